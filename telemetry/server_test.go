package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/tower/ecs"
	"golang.org/x/time/rate"
)

func TestRouter(t *testing.T) {
	rec := NewRecorder()
	rec.Publish(Snapshot{State: "playing", Level: 3, Entities: 12})
	rec.ObserveFrame(2*time.Millisecond, []ecs.Event{{Type: ecs.EventShotFired}})

	ts := httptest.NewServer(NewRouter(RouterConfig{Recorder: rec}))
	defer ts.Close()

	tests := []struct {
		path     string
		wantBody string
	}{
		{"/health", `"ok"`},
		{"/state", `"level":3`},
		{"/metrics", `tower_events_total{type="shot_fired"}`},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tc.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status %d", resp.StatusCode)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(body), tc.wantBody) {
				t.Fatalf("body missing %q", tc.wantBody)
			}
		})
	}
}

func TestStateSnapshotJSON(t *testing.T) {
	rec := NewRecorder()
	if rec.Snapshot().State != "loading" {
		t.Fatalf("expected loading snapshot")
	}
	rec.Publish(Snapshot{State: "menu"})

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	rr := httptest.NewRecorder()
	NewRouter(RouterConfig{Recorder: rec}).ServeHTTP(rr, req)

	var got Snapshot
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.State != "menu" {
		t.Fatalf("got %+v", got)
	}
}

func TestRateLimit(t *testing.T) {
	router := NewRouter(RouterConfig{Recorder: NewRecorder(), Limiter: rate.NewLimiter(0, 1)})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}
