package sim

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rook-computer/handheld/internal/buttons"
	"github.com/rook-computer/handheld/internal/state"
	"github.com/rook-computer/handheld/internal/web"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want buttons.Event
		ok   bool
	}{
		{"next", buttons.Next, true},
		{" PREV ", buttons.Prev, true},
		{"exit", buttons.Exit, true},
		{"1", buttons.Select("standard"), true},
		{"4", buttons.Select("rainbow"), true},
		{"5", "", false},
		{"0", "", false},
		{"mono", buttons.Select("mono"), true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKey(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSimEndpoints(t *testing.T) {
	store := state.NewStore("mono")
	control := NewControl(store)
	mux := web.NewDefaultMux("", web.APIV1Config{Deps: web.APIV1Deps{Store: store}})
	RegisterEndpoints(mux, control)

	post := func(path string) (int, map[string]any) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		var body map[string]any
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		return rec.Code, body
	}

	steps := []struct {
		path    string
		status  int
		palette string
	}{
		{"/sim/key/next", http.StatusOK, "bw"},
		{"/sim/key/4", http.StatusOK, "rainbow"},
		{"/sim/key/prev", http.StatusOK, "bw"},
		{"/sim/key/sepia", http.StatusBadRequest, "bw"},
		{"/sim/key/9", http.StatusBadRequest, "bw"},
		{"/sim/reset", http.StatusOK, "mono"},
	}
	for _, step := range steps {
		status, body := post(step.path)
		if status != step.status {
			t.Fatalf("POST %s status = %d, want %d (%v)", step.path, status, step.status, body)
		}
		if got := store.Snapshot().Palette; got != step.palette {
			t.Fatalf("after %s palette = %q, want %q", step.path, got, step.palette)
		}
	}

	if control.ExitRequested() {
		t.Fatal("exit requested before exit key")
	}
	if _, body := post("/sim/key/exit"); body["exit"] != true {
		t.Errorf("exit response = %v", body)
	}
	if !control.ExitRequested() {
		t.Error("exit key did not request exit")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sim/reset", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /sim/reset status = %d, want 405", rec.Code)
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":         "127.0.0.1:8080",
		"0.0.0.0:9000":  "127.0.0.1:9000",
		"[::]:8080":     "127.0.0.1:8080",
		"10.0.0.3:8080": "10.0.0.3:8080",
		"":              "127.0.0.1:8080",
	}
	for in, want := range tests {
		if got := DisplayAddr(in); got != want {
			t.Errorf("DisplayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}
