package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newFakeES(t *testing.T, status int, respond string) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respond)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &calls
}

func TestProfileIndex_Index(t *testing.T) {
	es, calls := newFakeES(t, http.StatusCreated, `{"result":"created"}`)
	idx := NewProfileIndex(es, "user_profiles")

	ext, _ := entity.NewExternalUserID("kc-1")
	name, _ := entity.NewUserName("Max", "Mustermann")
	p := entity.RehydrateUserProfile("p-1", ext, entity.MustEmail("max@schule.de"), name, entity.RoleTeacher, true, time.Now(), time.Now())

	require.NoError(t, idx.Index(context.Background(), p))
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/user_profiles/_doc/p-1", call.path)

	var doc profileDocument
	require.NoError(t, json.Unmarshal([]byte(call.body), &doc))
	assert.Equal(t, "Max Mustermann", doc.FullName)
	assert.Equal(t, "TEACHER", doc.Role)
}

func TestProfileIndex_Search(t *testing.T) {
	es, calls := newFakeES(t, http.StatusOK, `{"hits":{"hits":[{"_id":"p-2"},{"_id":"p-1"}]}}`)
	idx := NewProfileIndex(es, "user_profiles")

	ids, err := idx.Search(context.Background(), "max", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-2", "p-1"}, ids)
	assert.True(t, strings.Contains((*calls)[0].body, `"multi_match"`))
	assert.Equal(t, "/user_profiles/_search", (*calls)[0].path)
}

func TestProfileIndex_RemoveMissingIsFine(t *testing.T) {
	es, _ := newFakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	idx := NewProfileIndex(es, "user_profiles")
	assert.NoError(t, idx.Remove(context.Background(), "gone"))
}

func TestProfileIndex_SearchError(t *testing.T) {
	es, _ := newFakeES(t, http.StatusInternalServerError, `{"error":"boom"}`)
	idx := NewProfileIndex(es, "user_profiles")
	_, err := idx.Search(context.Background(), "max", 5)
	assert.Error(t, err)
}
