package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/internal/application"
	"github.com/oksasatya/schoollib-identity/pkg/response"
	"github.com/oksasatya/schoollib-identity/pkg/validation"
)

type RegistrationHandler struct {
	Svc    Registrar
	Logger *logrus.Logger
}

func NewRegistrationHandler(svc Registrar, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,pwd"`
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	StudentID   *string `json:"student_id" binding:"omitempty,max=64"`
	SchoolClass *string `json:"school_class" binding:"omitempty,max=32"`
}

// Register POST /api/v1/registration
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterUserCommand{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		StudentID:   req.StudentID,
		SchoolClass: req.SchoolClass,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user_id":               res.UserID,
		"email":                 res.Email,
		"verification_required": res.VerificationRequired,
	}, res.Message, nil)
}

// CheckEmail GET /api/v1/registration/check-email?email=
func (h *RegistrationHandler) CheckEmail(c *gin.Context) {
	res, err := h.Svc.CheckEmailAvailability(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"email":     res.Email,
		"available": res.Available,
		"allowed":   res.Allowed,
	}, "email availability", nil)
}
