package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"filmorate/internal/data/repository"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *utils.Config {
	return &utils.Config{
		Rules: utils.DefaultRules(),
		HTTP:  utils.HTTPConfig{CORSOrigins: []string{"*"}},
	}
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		method     string
		path       string
		wantStatus int
	}{
		{name: "health ok", pinger: stubPinger{}, method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "health db down", pinger: stubPinger{err: errors.New("refused")}, method: http.MethodGet, path: "/health", wantStatus: http.StatusServiceUnavailable},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "bad film id", method: http.MethodGet, path: "/api/films/abc", wantStatus: http.StatusBadRequest},
		{name: "bad like user id", method: http.MethodPut, path: "/api/films/1/like/0", wantStatus: http.StatusBadRequest},
		{name: "bad director id", method: http.MethodGet, path: "/api/films/director/x", wantStatus: http.StatusBadRequest},
		{name: "common needs ids", method: http.MethodGet, path: "/api/films/common?userId=1", wantStatus: http.StatusBadRequest},
		{name: "bad review count", method: http.MethodGet, path: "/api/reviews?count=-1", wantStatus: http.StatusBadRequest},
		{name: "unknown route", method: http.MethodGet, path: "/api/cinemas", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPatch, path: "/api/users/1", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := Wiring(&repository.Repository{}, nil, tt.pinger, testConfig(), zap.NewNop())

			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	app := Wiring(&repository.Repository{}, nil, nil, testConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}
