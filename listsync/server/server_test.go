package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHandler(t *testing.T) {
	h := &handler{}
	h.page.Store(&Page{MimeType: "text/html;charset=utf-8", Body: []byte("<p>report</p>")})

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantType string
		wantBody string
	}{
		{
			name:     "get",
			method:   http.MethodGet,
			path:     "/",
			wantCode: http.StatusOK,
			wantType: "text/html;charset=utf-8",
			wantBody: "<p>report</p>",
		},
		{
			name:     "head",
			method:   http.MethodHead,
			path:     "/",
			wantCode: http.StatusOK,
			wantType: "text/html;charset=utf-8",
		},
		{
			name:     "not_found",
			method:   http.MethodGet,
			path:     "/favicon.ico",
			wantCode: http.StatusNotFound,
			wantType: "text/plain",
			wantBody: "not found",
		},
		{
			name:     "post",
			method:   http.MethodPost,
			path:     "/",
			wantCode: http.StatusNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if diff := cmp.Diff(tt.wantBody, rec.Body.String()); diff != "" {
				t.Errorf("body is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestServerReplace(t *testing.T) {
	s, err := Run("localhost:0", &Page{MimeType: "text/plain", Body: []byte("first")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Shutdown(context.Background())

	get := func() string {
		t.Helper()
		resp, err := http.Get("http://" + s.Addr().String() + "/")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		return string(b)
	}

	if got := get(); got != "first" {
		t.Errorf("got %q, want %q", got, "first")
	}
	s.Replace(&Page{MimeType: "text/plain", Body: []byte("second")})
	if got := get(); got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}
