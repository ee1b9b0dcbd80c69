package respond

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	apiinternal "github.com/memberdesk/memberdesk/internal/api"
)

func decodeEnvelope(t *testing.T, body []byte) apiinternal.Envelope[struct{}] {
	t.Helper()
	var env apiinternal.Envelope[struct{}]
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return env
}

func TestNotFoundHandlerWritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	NotFoundHandler()(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("expected nil data, got %+v", env.Data)
	}
}

func TestMethodNotAllowedHandlerSetsAllowHeader(t *testing.T) {
	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Get("/members", func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/members", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", allow)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Code != "METHOD_NOT_ALLOWED" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestRecovererConvertsPanicTo500(t *testing.T) {
	h := Recoverer()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Code != "INTERNAL_SERVER_ERROR" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestErrorDefaultsCodeAndMessage(t *testing.T) {
	se := Error(context.Background(), http.StatusBadGateway, "", "", nil)
	if se.GetStatus() != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", se.GetStatus())
	}
	if se.Error() != "Bad Gateway" {
		t.Fatalf("unexpected message: %q", se.Error())
	}
}

func TestSuccessWrapsPayload(t *testing.T) {
	body := Success(context.Background(), struct{ Name string }{Name: "Ann"})
	if body.Body.Data == nil || body.Body.Data.Name != "Ann" {
		t.Fatalf("unexpected body: %+v", body.Body)
	}
	if body.Body.Error != nil {
		t.Fatalf("expected nil error, got %+v", body.Body.Error)
	}
}

func TestStatusCodeName(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{http.StatusBadGateway, "BAD_GATEWAY"},
		{999, "HTTP_999"},
	}
	for _, tc := range tests {
		if got := statusCodeName(tc.status); got != tc.want {
			t.Errorf("statusCodeName(%d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}
