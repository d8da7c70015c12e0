package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dsa_sheet/internal/app/service"
	"dsa_sheet/internal/common"
	"dsa_sheet/internal/common/security"
	"dsa_sheet/internal/domain/model"
	"dsa_sheet/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	byEmail map[string]*model.User
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
	}
	user.CreatedAt = time.Now()
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type memTopicRepo struct{ topics []model.Topic }

func (r *memTopicRepo) List(ctx context.Context) ([]model.Topic, error) { return r.topics, nil }

type memProblemRepo struct{ problems []model.Problem }

func (r *memProblemRepo) List(ctx context.Context) ([]model.Problem, error) {
	return r.problems, nil
}

type memProgressRepo struct {
	known map[string]bool
	rows  map[string]*model.Progress
}

func (r *memProgressRepo) ListByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	result := []model.Progress{}
	for _, row := range r.rows {
		if row.UserID == userID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (r *memProgressRepo) Upsert(ctx context.Context, progress *model.Progress) error {
	if !r.known[progress.ProblemID] {
		return fmt.Errorf("problem %s does not exist: %w", progress.ProblemID, common.ErrNotFound)
	}
	key := progress.UserID + "|" + progress.ProblemID
	if existing, ok := r.rows[key]; ok {
		existing.Completed = progress.Completed
		existing.CompletedAt = progress.CompletedAt
		*progress = *existing
		return nil
	}
	progress.CreatedAt = time.Now()
	stored := *progress
	r.rows[key] = &stored
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: 168 * time.Hour,
	}
	security.InitJWT()

	authService := service.NewAuthService(&memUserRepo{byEmail: map[string]*model.User{}})
	catalogService := service.NewCatalogService(
		&memTopicRepo{topics: []model.Topic{{ID: "t1", Name: "Arrays", Slug: "arrays", OrderIndex: 1}}},
		&memProblemRepo{problems: []model.Problem{{ID: "p1", TopicID: "t1", Title: "Two Sum", Slug: "two-sum", Difficulty: model.DifficultyEasy}}},
		nil, time.Minute,
	)
	progressService := service.NewProgressService(&memProgressRepo{
		known: map[string]bool{"p1": true},
		rows:  map[string]*model.Progress{},
	})

	server := httptest.NewServer(NewRouter(authService, catalogService, progressService, "http://localhost:5173"))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

type authPayload struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func register(t *testing.T, server *httptest.Server, email, password string) authPayload {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var payload authPayload
	decodeBody(t, resp, &payload)
	require.NotEmpty(t, payload.Token)
	return payload
}

func TestRegisterDuplicateReturns400(t *testing.T) {
	server := newTestServer(t)

	register(t, server, "a@b.c", "pw")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", map[string]string{
		"email": "a@b.c", "password": "pw",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginFailuresReturn401(t *testing.T) {
	server := newTestServer(t)
	register(t, server, "a@b.c", "right")

	for _, body := range []map[string]string{
		{"email": "a@b.c", "password": "wrong"},
		{"email": "nobody@b.c", "password": "right"},
	} {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", body)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/topics", "/api/problems", "/api/progress"} {
		resp := doJSON(t, http.MethodGet, server.URL+path, "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)

		resp = doJSON(t, http.MethodGet, server.URL+path, "not-a-token", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestProgressEndToEnd(t *testing.T) {
	server := newTestServer(t)
	auth := register(t, server, "a@b.c", "pw")

	// Fresh user has no progress.
	resp := doJSON(t, http.MethodGet, server.URL+"/api/progress", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []model.Progress
	decodeBody(t, resp, &rows)
	assert.Empty(t, rows)

	// Complete a problem.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/progress", auth.Token, map[string]interface{}{
		"problem_id": "p1", "completed": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var row model.Progress
	decodeBody(t, resp, &row)
	assert.Equal(t, "p1", row.ProblemID)
	assert.True(t, row.Completed)
	require.NotNil(t, row.CompletedAt)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/progress", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].ProblemID)
	assert.True(t, rows[0].Completed)

	// Toggle back: same row, not a second one.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/progress", auth.Token, map[string]interface{}{
		"problem_id": "p1", "completed": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/progress", auth.Token, nil)
	decodeBody(t, resp, &rows)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Completed)
	assert.Nil(t, rows[0].CompletedAt)

	// Unknown problem surfaces as 404.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/progress", auth.Token, map[string]interface{}{
		"problem_id": "p404", "completed": true,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Missing problem_id is a validation failure.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/progress", auth.Token, map[string]interface{}{
		"completed": true,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProgressIsolatedPerUser(t *testing.T) {
	server := newTestServer(t)
	alice := register(t, server, "alice@b.c", "pw")
	bob := register(t, server, "bob@b.c", "pw")

	for _, auth := range []authPayload{alice, bob} {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/progress", auth.Token, map[string]interface{}{
			"problem_id": "p1", "completed": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	var aliceRows, bobRows []model.Progress
	resp := doJSON(t, http.MethodGet, server.URL+"/api/progress", alice.Token, nil)
	decodeBody(t, resp, &aliceRows)
	resp = doJSON(t, http.MethodGet, server.URL+"/api/progress", bob.Token, nil)
	decodeBody(t, resp, &bobRows)

	require.Len(t, aliceRows, 1)
	require.Len(t, bobRows, 1)
	assert.Equal(t, alice.User.ID, aliceRows[0].UserID)
	assert.Equal(t, bob.User.ID, bobRows[0].UserID)
}

func TestCatalogSharedAcrossUsers(t *testing.T) {
	server := newTestServer(t)
	auth := register(t, server, "a@b.c", "pw")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/topics", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var topics []model.Topic
	decodeBody(t, resp, &topics)
	require.Len(t, topics, 1)
	assert.Equal(t, "Arrays", topics[0].Name)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/problems", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var problems []model.Problem
	decodeBody(t, resp, &problems)
	require.Len(t, problems, 1)
	assert.Equal(t, "Two Sum", problems[0].Title)
}
