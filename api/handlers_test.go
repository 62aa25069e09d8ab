package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"monetrix/analytics"
	"monetrix/auth"
	"monetrix/chatbot"
	models "monetrix/database/models_pkg"
	"monetrix/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes so handler tests run without Postgres or Redis.

type fakeRepo struct {
	records []*models.AnalysisRecord
	clock   time.Time
	seq     int
}

func (f *fakeRepo) Save(_ context.Context, record *models.AnalysisRecord) error {
	f.seq++
	record.ID = fmt.Sprintf("rec-%d", f.seq)
	record.CreatedAt = f.clock
	f.clock = f.clock.Add(time.Second)
	stored := *record
	f.records = append(f.records, &stored)
	return nil
}

func (f *fakeRepo) LatestByUser(_ context.Context, userID string) (*models.AnalysisRecord, error) {
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			return f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) HistoryByUser(_ context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	var out []models.AnalysisRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, *f.records[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) ByIDAndUser(_ context.Context, id, userID string) (*models.AnalysisRecord, error) {
	for _, r := range f.records {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) PreviousBefore(_ context.Context, userID string, before time.Time) (*models.AnalysisRecord, error) {
	var prev *models.AnalysisRecord
	for _, r := range f.records {
		if r.UserID == userID && r.CreatedAt.Before(before) {
			if prev == nil || r.CreatedAt.After(prev.CreatedAt) {
				prev = r
			}
		}
	}
	return prev, nil
}

type fakeUserStore struct {
	byEmail map[string]*models.User
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

type fakeSessionStore struct {
	tokens map[string]string
}

func (f *fakeSessionStore) Put(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeSessionStore) Lookup(_ context.Context, token string) (string, error) {
	return f.tokens[token], nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	repo := &fakeRepo{clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	authMgr := auth.NewManager(
		&fakeUserStore{byEmail: make(map[string]*models.User)},
		&fakeSessionStore{tokens: make(map[string]string)},
		time.Hour, 8,
	)
	srv := NewServer(
		service.NewAnalysisService(repo, nil),
		authMgr,
		chatbot.NewBot(chatbot.NewDictionary(), nil),
	)

	ctx := context.Background()
	_, err := authMgr.Register(ctx, "Asha", "asha@example.com", "password123")
	require.NoError(t, err)
	token, err := authMgr.Login(ctx, "asha@example.com", "password123")
	require.NoError(t, err)

	return srv, token
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalysisRoutesRequireAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/analysis/latest",
		"/api/analysis/history",
		"/api/analysis/comparison/rec-1",
	} {
		rec := doJSON(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/analysis/create", "bogus-token", analytics.Inputs{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAnalysisHandler(t *testing.T) {
	srv, token := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analysis/create", token, analytics.Inputs{
		BusinessName: "Chai Corner",
		PeriodLabel:  "Q1 2025",
		TotalRevenue: 100000,
		Purchases:    50000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Analytics analytics.Metrics   `json:"analytics"`
		Insights  []analytics.Insight `json:"insights"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 50.0, resp.Analytics.NetMargin)
	assert.Equal(t, analytics.PQIHigh, resp.Analytics.PQI)
	assert.Equal(t, 90, resp.Analytics.ExpenseScore)
	require.NotEmpty(t, resp.Insights)
	assert.Equal(t, analytics.CategoryPositive, resp.Insights[0].Category)
}

func TestCreateAnalysisValidation(t *testing.T) {
	srv, token := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analysis/create", token, analytics.Inputs{
		PeriodLabel:  "Q1 2025",
		TotalRevenue: 1000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "businessName")
}

func TestGetLatestHandler(t *testing.T) {
	srv, token := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/analysis/latest", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No analysis found")

	doJSON(t, srv, http.MethodPost, "/api/analysis/create", token, analytics.Inputs{
		BusinessName: "Chai Corner",
		PeriodLabel:  "Q1 2025",
		TotalRevenue: 100000,
	})

	rec = doJSON(t, srv, http.MethodGet, "/api/analysis/latest", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.AnalysisRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
	assert.Equal(t, "Chai Corner", record.BusinessName)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestGetHistoryHandler(t *testing.T) {
	srv, token := newTestServer(t)

	for i := 0; i < 3; i++ {
		doJSON(t, srv, http.MethodPost, "/api/analysis/create", token, analytics.Inputs{
			BusinessName: "Chai Corner",
			PeriodLabel:  fmt.Sprintf("Month %d", i+1),
			TotalRevenue: float64(1000 * (i + 1)),
		})
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/analysis/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Records []models.AnalysisRecord `json:"records"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Records, 3)
	assert.Equal(t, "Month 3", resp.Records[0].PeriodLabel)
}

func TestComparisonHandler(t *testing.T) {
	srv, token := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/analysis/create", token, analytics.Inputs{
		BusinessName: "Chai Corner", PeriodLabel: "Q1", TotalRevenue: 80000, Purchases: 40000,
	})
	doJSON(t, srv, http.MethodPost, "/api/analysis/create", token, analytics.Inputs{
		BusinessName: "Chai Corner", PeriodLabel: "Q2", TotalRevenue: 100000, Purchases: 50000,
	})

	// First record has no predecessor: success with nulls, not 404.
	rec := doJSON(t, srv, http.MethodGet, "/api/analysis/comparison/rec-1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Current  *models.AnalysisRecord `json:"current"`
		Previous *models.AnalysisRecord `json:"previous"`
		Trends   *analytics.TrendDelta  `json:"trends"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotNil(t, resp.Current)
	assert.Nil(t, resp.Previous)
	assert.Nil(t, resp.Trends)

	// Second record compares against the first.
	rec = doJSON(t, srv, http.MethodGet, "/api/analysis/comparison/rec-2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Trends)
	assert.Equal(t, 20000.0, resp.Trends.RevenueChange)

	// Unknown record id is 404.
	rec = doJSON(t, srv, http.MethodGet, "/api/analysis/comparison/rec-99", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Record not found")
}

func TestChatHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/chat", "", map[string]string{"message": "what is cogs?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reply chatbot.Reply `json:"reply"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "COGS (Cost of Goods Sold)", resp.Reply.Term)

	rec = doJSON(t, srv, http.MethodPost, "/api/chat", "", map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportReportHandler(t *testing.T) {
	srv, token := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analysis/report", token, map[string]interface{}{
		"businessName": "Chai Corner",
		"periodLabel":  "Q1 2025",
		"analytics":    analytics.Metrics{TotalRevenue: 100000, NetProfit: 30000, NetMargin: 30},
		"insights": []analytics.Insight{
			{Text: "Excellent gross margin!", Category: analytics.CategoryPositive},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "monetrix-analysis-")
	assert.True(t, strings.Contains(rec.Body.String(), "Chai Corner"))
}

func TestRegisterAndLoginHandlers(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ravi@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ravi@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
