package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/internal/dataset"
	"github.com/tennisframework/tennis-api/internal/logic"
	"github.com/tennisframework/tennis-api/internal/models"
)

// Fixtures

func testSource() *dataset.StaticSource {
	component := func(id, category, access, realTime, evidence string) dataset.ComponentRow {
		return dataset.ComponentRow{
			ID:                id,
			Category:          category,
			Component:         "Component " + id,
			Accessibility:     access,
			RealTimeAvailable: realTime,
			DataSource:        "ATP/WTA",
			EvidenceBased:     evidence,
		}
	}
	match := func(date, tournament, category, p1, p2, winner string) dataset.MatchRow {
		return dataset.MatchRow{Date: date, Tournament: tournament, Category: category, Player1: p1, Player2: p2, Winner: winner}
	}
	mens, womens := models.MatchCategoryMensSingles, models.MatchCategoryWomensSingles

	return &dataset.StaticSource{
		Components: []dataset.ComponentRow{
			component("C1", models.CategoryServeAnalysis, models.AccessibilityPublic, "Yes", "Yes"),
			component("C2", models.CategoryServeAnalysis, "Subscription", "No", "Yes"),
			component("C3", models.CategoryRecentForm, models.AccessibilityPublic, "Yes", "No"),
		},
		Matches: []dataset.MatchRow{
			match("2024-01-28", "Australian Open", mens, "Jannik Sinner", "Daniil Medvedev", "Jannik Sinner"),
			match("2024-07-14", "Wimbledon", mens, "Carlos Alcaraz", "Jannik Sinner", "Carlos Alcaraz"),
			match("2024-09-07", "US Open", womens, "Aryna Sabalenka", "Jessica Pegula", "Aryna Sabalenka"),
			match("2025-07-13", "Wimbledon", mens, "Carlos Alcaraz", "Jannik Sinner", "Jannik Sinner"),
		},
	}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	logger := zap.NewNop()
	src := testSource()
	fw, err := logic.NewFramework(context.Background(), logic.FrameworkConfig{
		Checklist: dataset.NewChecklistStore(src, logger.Sugar()),
		Matches:   dataset.NewMatchStore(src, logger.Sugar()),
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("NewFramework() error = %v", err)
	}
	return New(Config{Framework: fw, Logger: logger})
}

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.Router([]string{"*"}).ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return v
}

// Tests

func TestGetChecklist_Filters(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name           string
		query          string
		wantIDs        []string
		expectedStatus int
	}{
		{name: "All", query: "", wantIDs: []string{"C1", "C2", "C3"}, expectedStatus: http.StatusOK},
		{name: "Category", query: "?category=Serve+Analysis", wantIDs: []string{"C1", "C2"}, expectedStatus: http.StatusOK},
		{name: "Unknown category", query: "?category=Nope", wantIDs: []string{}, expectedStatus: http.StatusOK},
		{name: "Real time", query: "?real_time=true", wantIDs: []string{"C1", "C3"}, expectedStatus: http.StatusOK},
		{name: "Not real time", query: "?real_time=false", wantIDs: []string{"C2"}, expectedStatus: http.StatusOK},
		{name: "Public evidence", query: "?public=true&evidence=true", wantIDs: []string{"C1"}, expectedStatus: http.StatusOK},
		{name: "Category and flag", query: "?category=Serve+Analysis&public=false", wantIDs: []string{"C2"}, expectedStatus: http.StatusOK},
		{name: "Bad flag", query: "?real_time=maybe", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, "GET", "/api/v1/checklist"+tt.query, "")
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			got := []string{}
			for _, c := range decode[[]models.ComponentRecord](t, w) {
				got = append(got, c.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChecklistCategoriesAndSummary(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h, "GET", "/api/v1/checklist/categories", "")
	if diff := cmp.Diff([]string{"Recent Form", "Serve Analysis"}, decode[[]string](t, w)); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	w = serve(h, "GET", "/api/v1/checklist/summary", "")
	want := models.ChecklistSummary{TotalComponents: 3, Categories: 2, RealTimeAvailable: 2, EvidenceBased: 2, PubliclyAvailable: 2}
	if diff := cmp.Diff(want, decode[models.ChecklistSummary](t, w)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMatches_Filters(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"All", "", 4},
		{"Player", "?player=Jannik+Sinner", 3},
		{"Player and tournament", "?player=Jannik+Sinner&tournament=Wimbledon", 2},
		{"Category", "?category=Women%27s+Singles", 1},
		{"No match", "?player=Nobody", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, "GET", "/api/v1/matches"+tt.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if got := decode[[]models.MatchRecord](t, w); len(got) != tt.want {
				t.Errorf("got %d matches, want %d", len(got), tt.want)
			}
		})
	}
}

func TestListsAndSummary(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h, "GET", "/api/v1/tournaments", "")
	if diff := cmp.Diff([]string{"Australian Open", "US Open", "Wimbledon"}, decode[[]string](t, w)); diff != "" {
		t.Errorf("tournaments mismatch (-want +got):\n%s", diff)
	}

	w = serve(h, "GET", "/api/v1/players", "")
	wantPlayers := []string{"Aryna Sabalenka", "Carlos Alcaraz", "Daniil Medvedev", "Jannik Sinner", "Jessica Pegula"}
	if diff := cmp.Diff(wantPlayers, decode[[]string](t, w)); diff != "" {
		t.Errorf("players mismatch (-want +got):\n%s", diff)
	}

	w = serve(h, "GET", "/api/v1/matches/summary", "")
	summary := decode[models.MatchSummary](t, w)
	if summary.TotalMatches != 4 || summary.UniquePlayers != 5 || summary.UniqueTournaments != 3 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.ByCategory[models.MatchCategoryMensSingles] != 3 || summary.ByCategory[models.MatchCategoryWomensSingles] != 1 {
		t.Errorf("ByCategory = %v", summary.ByCategory)
	}
}

func TestGetPlayerPerformance(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name           string
		player         string
		want           models.PerformanceSummary
		expectedStatus int
	}{
		{
			name:           "Known player",
			player:         "Jannik Sinner",
			want:           models.PerformanceSummary{Player: "Jannik Sinner", TotalMatches: 3, Wins: 2, Losses: 1, WinPercentage: 2.0 / 3},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown player",
			player:         "Nobody",
			want:           models.PerformanceSummary{Player: "Nobody"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing name",
			player:         "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/players/x/performance", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("name", tt.player)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			h.GetPlayerPerformance(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			if diff := cmp.Diff(tt.want, decode[models.PerformanceSummary](t, w)); diff != "" {
				t.Errorf("performance mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetPlayerPerformance_PathDecoding(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		target     string
		wantPlayer string
		wantWins   int
	}{
		{"Escaped space", "/api/v1/players/Jannik%20Sinner/performance", "Jannik Sinner", 2},
		{"Literal percent sequence", "/api/v1/players/Player%2541/performance", "Player%41", 0},
		{"Escaped slash", "/api/v1/players/A%2FB/performance", "A/B", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, "GET", tt.target, "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			got := decode[models.PerformanceSummary](t, w)
			if got.Player != tt.wantPlayer || got.Wins != tt.wantWins {
				t.Errorf("performance = %+v, want player %q with %d wins", got, tt.wantPlayer, tt.wantWins)
			}
		})
	}
}

func TestGetHeadToHead(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h, "GET", "/api/v1/head-to-head?player1=Jannik+Sinner&player2=Carlos+Alcaraz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	rec := decode[models.HeadToHeadRecord](t, w)
	if len(rec.Matches) != 2 || rec.Player1Wins != 1 || rec.Player2Wins != 1 {
		t.Errorf("head to head = %+v", rec)
	}

	if w := serve(h, "GET", "/api/v1/head-to-head?player1=Jannik+Sinner", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing player2: expected status 400, got %d", w.Code)
	}
}

func TestGetReport(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h, "GET", "/api/v1/report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{"- **Total Components**: 3", "- **Total Matches**: 4", "- **Categories**: 2"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestCreatePrediction_TableDriven(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name           string
		body           string
		wantError      string
		expectedStatus int
	}{
		{
			name:           "Valid request",
			body:           `{"player1": "Jannik Sinner", "player2": "Carlos Alcaraz", "surface": "Grass"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid JSON",
			body:           `{"player1": `,
			wantError:      "Invalid JSON body",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing player2",
			body:           `{"player1": "Jannik Sinner"}`,
			wantError:      "Missing required field: player2",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Same players",
			body:           `{"player1": "Jannik Sinner", "player2": "Jannik Sinner"}`,
			wantError:      "player2 must differ from player1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, "POST", "/api/v1/predictions", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.wantError != "" {
				if got := decode[map[string]string](t, w)["error"]; got != tt.wantError {
					t.Errorf("error = %q, want %q", got, tt.wantError)
				}
				return
			}
			pred := decode[models.MatchPrediction](t, w)
			if !pred.Placeholder || pred.PredictedWinner != "Jannik Sinner" || pred.Surface != "Grass" {
				t.Errorf("prediction = %+v", pred)
			}
			if pred.TournamentLevel != models.DefaultTournamentLevel || pred.ComponentsAnalyzed != 3 {
				t.Errorf("defaults/components = %s/%d", pred.TournamentLevel, pred.ComponentsAnalyzed)
			}
		})
	}
}

func TestValidatePredictions(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h, "POST", "/api/v1/predictions/validate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	report := decode[models.ValidationReport](t, w)
	// Player1 wins three of the four fixtures.
	if report.TotalMatchesTested != 4 || report.CorrectPredictions != 3 || report.AccuracyPercentage != 75 || !report.Placeholder {
		t.Errorf("report = %+v", report)
	}

	w = serve(h, "POST", "/api/v1/predictions/validate?tournament=Wimbledon", "")
	report = decode[models.ValidationReport](t, w)
	if report.TotalMatchesTested != 2 || report.CorrectPredictions != 1 {
		t.Errorf("Wimbledon report = %+v", report)
	}
}

func TestHealthAndReady(t *testing.T) {
	h := newTestHandler(t)

	if w := serve(h, "GET", "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health: expected status 200, got %d", w.Code)
	}

	h.checks = map[string]HealthCheck{
		"redis": func(ctx context.Context) error { return nil },
	}
	if w := serve(h, "GET", "/ready", ""); w.Code != http.StatusOK {
		t.Errorf("ready: expected status 200, got %d", w.Code)
	}

	h.checks["postgres"] = func(ctx context.Context) error { return errors.New("connection refused") }
	w := serve(h, "GET", "/ready", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready with failing check: expected status 503, got %d", w.Code)
	}
	body := decode[map[string]interface{}](t, w)
	if body["ready"] != false {
		t.Errorf("ready = %v, want false", body["ready"])
	}
}

func TestReloadData(t *testing.T) {
	h := newTestHandler(t)
	before := h.framework.Current()

	w := serve(h, "POST", "/api/v1/system/reload", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := decode[map[string]interface{}](t, w)
	if body["version"] != before.Version || body["matches"] != float64(4) {
		t.Errorf("reload response = %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	serve(h, "GET", "/api/v1/tournaments", "")

	w := serve(h, "GET", "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `tennis_http_requests_total{method="GET",route="/api/v1/tournaments",status="200"}`) {
		t.Error("metrics missing tournaments request counter")
	}
}
