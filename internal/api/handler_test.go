package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/cache"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/datasets"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dispatch"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/orchestrator"
)

// failingStrategy trips the orchestrator's dispatch failure path.
type failingStrategy struct{}

func (failingStrategy) Fetch(context.Context, dashboard.WizardInputs, string) (*dashboard.DashboardResult, error) {
	return nil, &dispatch.StatusError{Status: 503, Body: "down"}
}

func (failingStrategy) Mode() dispatch.Mode { return dispatch.ModeReal }

func newTestHandler(t *testing.T, strategy dispatch.Strategy) *Handler {
	t.Helper()
	registry, err := datasets.NewRegistry(datasets.DefaultVersions())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if strategy == nil {
		strategy = dispatch.NewSimulated(registry, 0)
	}
	return NewHandler(orchestrator.New(registry, cache.New(), strategy, nil, orchestrator.Silent))
}

func postDashboard(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/wizard/dashboard", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Dashboard(rec, req)
	return rec
}

func TestDashboard_Success(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := postDashboard(t, h, `{
		"location_key": "geo_1",
		"selected_hazards": ["Heat", "Flood"],
		"selected_system": "Health",
		"precision_level": "approximate"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry the fingerprint for correlation")
	}

	var result dashboard.DashboardResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.RiskChain.Nodes) < 1 {
		t.Error("expected risk nodes in the response")
	}
	if result.Baseline.Unit != dashboard.TemperatureUnit {
		t.Errorf("unit = %q", result.Baseline.Unit)
	}
}

func TestDashboard_MissingFieldIs400(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := postDashboard(t, h, `{"location_key": "geo_1", "selected_hazards": [], "selected_system": "Health"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error == "" || body.Message == "" {
		t.Errorf("failure body must carry error and message: %+v", body)
	}
}

func TestDashboard_MalformedJSONIs400(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := postDashboard(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestDashboard_NonPostIs405(t *testing.T) {
	h := newTestHandler(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/wizard/dashboard", nil)
	rec := httptest.NewRecorder()
	h.Dashboard(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestDashboard_DispatchFailureIs500(t *testing.T) {
	h := newTestHandler(t, failingStrategy{})
	rec := postDashboard(t, h, `{
		"location_key": "geo_1",
		"selected_hazards": ["Heat"],
		"selected_system": "Health"
	}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if !strings.Contains(body.Message, "503") {
		t.Errorf("diagnostic detail should surface the upstream status: %+v", body)
	}
}
