package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkale/dishpoll/internal/auth"
	"github.com/mkale/dishpoll/internal/handler"
	"github.com/mkale/dishpoll/internal/leaderboard"
	"github.com/mkale/dishpoll/internal/models"
	"github.com/mkale/dishpoll/internal/service"
	"github.com/mkale/dishpoll/internal/storage"
	"github.com/mkale/dishpoll/internal/storage/memory"
)

type stubCatalog struct{}

func (stubCatalog) Fetch(context.Context) []models.Dish {
	return []models.Dish{
		{ID: 1, Name: "Lasagne"},
		{ID: 2, Name: "Pho"},
		{ID: 3, Name: "Sushi"},
	}
}

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	roster := []models.User{
		{ID: "1", Username: "john_doe", PasswordHash: string(hash)},
		{ID: "2", Username: "jane_smith", PasswordHash: string(hash)},
	}
	rosterIDs := []string{"1", "2"}

	logger := slog.Default()
	ballots := storage.NewBallotStore(memory.New(), logger)
	poll := service.NewPollService(stubCatalog{}, ballots, rosterIDs, logger)
	authn := auth.NewAuthenticator(roster)
	tokens := auth.NewJWTManager("test-secret-key-for-handler-tests", time.Hour)

	srv := httptest.NewServer(handler.New(poll, authn, tokens, logger))
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(srv.URL+"/api/v1/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := setupServer(t)

	body, _ := json.Marshal(map[string]string{"username": "john_doe", "password": "wrong"})
	resp, err := http.Post(srv.URL+"/api/v1/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := setupServer(t)

	for _, route := range []string{"/api/v1/dishes", "/api/v1/ballot", "/api/v1/leaderboard"} {
		resp, err := http.Get(srv.URL + route)
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"), route)

		var body struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), route)
		resp.Body.Close()
		assert.NotEmpty(t, body.Error, route)
	}
}

func TestVotingFlow(t *testing.T) {
	srv := setupServer(t)
	john := login(t, srv, "john_doe", "password123")
	jane := login(t, srv, "jane_smith", "password123")

	// Fresh users have an empty ballot.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/ballot", john, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Votes models.Ballot `json:"votes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Empty(t, got.Votes)

	// Submit both ballots.
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/ballot", john,
		map[string]any{"votes": map[string]int{"1": 1, "2": 2, "3": 3}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/ballot", jane,
		map[string]any{"votes": map[string]int{"2": 1, "1": 2, "3": 3}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// John reads his ballot back exactly as submitted.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/ballot", john, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, models.Ballot{1: 1, 2: 2, 3: 3}, got.Votes)

	// Leaderboard: Lasagne 50, Pho 50 (tie by catalog order), Sushi 20.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/leaderboard", jane, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []leaderboard.ScoredDish
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 3)

	assert.Equal(t, "Lasagne", rows[0].Dish.Name)
	assert.Equal(t, 50, rows[0].TotalPoints)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "Pho", rows[1].Dish.Name)
	assert.Equal(t, 50, rows[1].TotalPoints)
	assert.Equal(t, "Sushi", rows[2].Dish.Name)
	assert.Equal(t, 20, rows[2].TotalPoints)

	// Jane's own ranks are overlaid; Sushi carries her rank 3.
	require.NotNil(t, rows[1].OwnRank)
	assert.Equal(t, models.RankFirst, *rows[1].OwnRank)
	require.NotNil(t, rows[2].OwnRank)
	assert.Equal(t, models.RankThird, *rows[2].OwnRank)
}

func TestSubmitInvalidBallot(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv, "john_doe", "password123")

	tests := []struct {
		name  string
		votes map[string]int
	}{
		{"too few entries", map[string]int{"1": 1}},
		{"duplicate rank", map[string]int{"1": 1, "2": 1, "3": 3}},
		{"rank out of range", map[string]int{"1": 1, "2": 2, "3": 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/ballot", token,
				map[string]any{"votes": tt.votes})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error, "validation errors carry a user-actionable message")
		})
	}
}

func TestClearBallot(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv, "john_doe", "password123")

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/ballot", token,
		map[string]any{"votes": map[string]int{"1": 1, "2": 2, "3": 3}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Clear twice: both succeed identically.
	for i := 0; i < 2; i++ {
		resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/ballot", token, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/ballot", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Votes models.Ballot `json:"votes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Empty(t, got.Votes)
}

func TestDishesEndpoint(t *testing.T) {
	srv := setupServer(t)
	token := login(t, srv, "john_doe", "password123")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/dishes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dishes []models.Dish
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dishes))
	require.Len(t, dishes, 3)
	assert.Equal(t, "Lasagne", dishes[0].Name)
}

func TestHealthz(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
