package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
}

func TestToDetails(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Password: "short", Role: "JANITOR"})
	details := ToDetails(err)

	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be between 8 and 128 characters", details["password"])
	assert.Equal(t, "must be one of STUDENT, TEACHER, LIBRARIAN, ADMIN", details["role"])

	assert.NoError(t, binding.Validator.ValidateStruct(&sample{Email: "max@schule.de", Password: "Secret1!", Role: "teacher"}))
}

func TestToDetails_Payload(t *testing.T) {
	var v sample
	err := json.Unmarshal([]byte("{"), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
