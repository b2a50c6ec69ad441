package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthlens/healthlens-backend/internal/domain"
	"github.com/healthlens/healthlens-backend/internal/platform/apierr"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
	"github.com/healthlens/healthlens-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

type stubAnalysisService struct {
	claimResult      services.ClaimAnalysisResult
	claimErr         error
	influencerResult services.InfluencerAnalysisResult
	influencerErr    error

	claimCalls      int
	influencerCalls int
}

func (s *stubAnalysisService) AnalyzeClaim(ctx context.Context, claimText string, influencerID *uuid.UUID) (services.ClaimAnalysisResult, error) {
	s.claimCalls++
	return s.claimResult, s.claimErr
}

func (s *stubAnalysisService) AnalyzeInfluencer(ctx context.Context, username, platform string, posts []string) (services.InfluencerAnalysisResult, error) {
	s.influencerCalls++
	return s.influencerResult, s.influencerErr
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func analysisRouter(stub *stubAnalysisService, log *logger.Logger, devMode bool) *gin.Engine {
	h := NewAnalysisHandler(stub, log, devMode)
	r := gin.New()
	r.POST("/api/analysis/claim", h.AnalyzeClaim)
	r.POST("/api/analysis/influencer", h.AnalyzeInfluencer)
	return r
}

func TestAnalyzeClaimMissingClaimText(t *testing.T) {
	stub := &stubAnalysisService{}
	router := analysisRouter(stub, testLogger(t), false)

	w := postJSON(t, router, "/api/analysis/claim", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if stub.claimCalls != 0 {
		t.Fatalf("service must not be called on validation failure")
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == nil || body["error"] == "" {
		t.Fatalf("expected error field, got %v", body)
	}
}

func TestAnalyzeClaimInvalidInfluencerID(t *testing.T) {
	stub := &stubAnalysisService{}
	router := analysisRouter(stub, testLogger(t), false)

	w := postJSON(t, router, "/api/analysis/claim", `{"claimText":"x","influencerId":"not-a-uuid"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if stub.claimCalls != 0 {
		t.Fatalf("service must not be called on validation failure")
	}
}

func TestAnalyzeClaimSuccess(t *testing.T) {
	stub := &stubAnalysisService{claimResult: services.ClaimAnalysisResult{
		Analysis: domain.ClaimAnalysis{TruthScore: 55, Category: "Nutrition"},
	}}
	router := analysisRouter(stub, testLogger(t), false)

	w := postJSON(t, router, "/api/analysis/claim", `{"claimText":"kale cures cancer"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success  bool                 `json:"success"`
		Analysis domain.ClaimAnalysis `json:"analysis"`
		Warning  string               `json:"warning"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Analysis.TruthScore != 55 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if body.Warning != "" {
		t.Fatalf("no warning expected: %s", w.Body.String())
	}
}

func TestAnalyzeClaimWarningStillOK(t *testing.T) {
	stub := &stubAnalysisService{claimResult: services.ClaimAnalysisResult{
		Analysis: domain.ClaimAnalysis{TruthScore: 80},
		Warning:  "failed to store claim in database: boom",
	}}
	router := analysisRouter(stub, testLogger(t), false)

	w := postJSON(t, router, "/api/analysis/claim", `{"claimText":"x"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("storage warnings must not change the status, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["warning"] == nil || body["success"] != true {
		t.Fatalf("expected success with warning, got %s", w.Body.String())
	}
}

func TestAnalyzeClaimUpstreamErrorCarriesGroqError(t *testing.T) {
	providerPayload := map[string]any{"error": map[string]any{"message": "rate limited"}}
	stub := &stubAnalysisService{
		claimErr: apierr.Upstream("provider_error", errorString("provider http 429"), providerPayload),
	}
	router := analysisRouter(stub, testLogger(t), false)

	w := postJSON(t, router, "/api/analysis/claim", `{"claimText":"x"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["groqError"] == nil {
		t.Fatalf("expected groqError in body: %s", w.Body.String())
	}
	if body["stack"] != nil {
		t.Fatalf("stack must not leak outside development mode")
	}
}

func TestAnalyzeClaimDevModeExposesStack(t *testing.T) {
	stub := &stubAnalysisService{claimErr: apierr.Parse("model_reply_not_json", errorString("bad json"))}
	router := analysisRouter(stub, testLogger(t), true)

	w := postJSON(t, router, "/api/analysis/claim", `{"claimText":"x"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["stack"] == nil {
		t.Fatalf("expected stack in development mode: %s", w.Body.String())
	}
}

func TestAnalyzeInfluencerMissingFields(t *testing.T) {
	cases := []string{
		`{}`,
		`{"username":"guru"}`,
		`{"username":"guru","platform":"instagram"}`,
		`{"platform":"instagram","posts":["a"]}`,
	}
	for _, body := range cases {
		stub := &stubAnalysisService{}
		router := analysisRouter(stub, testLogger(t), false)

		w := postJSON(t, router, "/api/analysis/influencer", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
		if stub.influencerCalls != 0 {
			t.Fatalf("body %s: service must not be called", body)
		}
	}
}

func TestAnalyzeInfluencerSuccess(t *testing.T) {
	stub := &stubAnalysisService{influencerResult: services.InfluencerAnalysisResult{
		Analysis:   domain.InfluencerAnalysis{EvidenceBasedScore: 77, RiskLevel: "low"},
		Influencer: &domain.Influencer{ID: uuid.New(), Username: "guru", TrustScore: 77},
	}}
	router := analysisRouter(stub, testLogger(t), false)

	w := postJSON(t, router, "/api/analysis/influencer", `{"username":"guru","platform":"instagram","posts":["p1","p2"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true || body["influencer"] == nil {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }
