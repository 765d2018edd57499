package healthprobe

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	hc := New()

	if hc == nil {
		t.Fatal("New() returned nil")
	}

	if time.Since(hc.startTime) > 1*time.Second {
		t.Errorf("Start time is too old: %v", hc.startTime)
	}

	if hc.ready.Load() {
		t.Error("HealthChecker should not be ready by default")
	}
}

func TestSetReady_Toggle(t *testing.T) {
	hc := New()

	if hc.ready.Load() {
		t.Error("Should start not ready")
	}

	hc.SetReady(true)
	if !hc.ready.Load() {
		t.Error("Should be ready after SetReady(true)")
	}

	hc.SetReady(false)
	if hc.ready.Load() {
		t.Error("Should not be ready after SetReady(false)")
	}
}

func TestHealth_AlwaysOK(t *testing.T) {
	hc := New()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hc.Health()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %q", resp.Status)
	}
}

func TestReady_NotReady(t *testing.T) {
	hc := New()

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	hc.Ready()(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestReady_Ready(t *testing.T) {
	hc := New()
	hc.SetReady(true)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	hc.Ready()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ready" {
		t.Errorf("expected status ready, got %q", resp.Status)
	}
}

func TestReady_FailingCheck(t *testing.T) {
	hc := New()
	hc.SetReady(true)
	hc.RegisterCheck("journal", func() error {
		return errors.New("database unreachable")
	})
	hc.RegisterCheck("recorder", func() error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	hc.Ready()(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Checks["journal"] != "database unreachable" {
		t.Errorf("expected journal check failure, got %q", resp.Checks["journal"])
	}
	if resp.Checks["recorder"] != "ok" {
		t.Errorf("expected recorder ok, got %q", resp.Checks["recorder"])
	}
}

func TestReady_CheckReplaced(t *testing.T) {
	hc := New()
	hc.SetReady(true)
	hc.RegisterCheck("journal", func() error { return errors.New("down") })
	hc.RegisterCheck("journal", func() error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	hc.Ready()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 after check replacement, got %d", rec.Code)
	}
}
