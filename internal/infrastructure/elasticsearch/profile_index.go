package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/schoollib-identity/internal/application"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ProfileIndex is the search projection of user profiles. Postgres stays the
// source of truth; documents only carry what search needs.
type ProfileIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewProfileIndex(es *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{es: es, index: index}
}

var _ application.ProfileIndexer = (*ProfileIndex)(nil)

type profileDocument struct {
	ID             string    `json:"id"`
	ExternalUserID string    `json:"external_user_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Active         bool      `json:"active"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toDocument(p *entity.UserProfile) profileDocument {
	return profileDocument{
		ID:             p.ID(),
		ExternalUserID: p.ExternalUserID().String(),
		Email:          p.Email().String(),
		FirstName:      p.UserName().FirstName(),
		LastName:       p.UserName().LastName(),
		FullName:       p.FullName(),
		Role:           p.Role().String(),
		Active:         p.IsActive(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func (i *ProfileIndex) Index(ctx context.Context, p *entity.UserProfile) error {
	b, err := json.Marshal(toDocument(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.index, DocumentID: p.ID(), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index profile %s: %s", p.ID(), res.Status())
	}
	return nil
}

func (i *ProfileIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove profile %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over email and names, boosting email.
func (i *ProfileIndex) Search(ctx context.Context, query string, size int) ([]string, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"email^2", "full_name", "first_name", "last_name"},
			},
		},
		"size":    size,
		"_source": false,
	}
	if query == "" {
		body["query"] = map[string]any{"match_all": map[string]any{}}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := i.es.Search(
		i.es.Search.WithContext(c),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search profiles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
