package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthEngine(keys []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(keys))
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(APIKeyContextKey))
	})
	return r
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		headers map[string]string
		want    int
		body    string
	}{
		{"no keys configured", nil, nil, http.StatusOK, ""},
		{"only blank keys", []string{"", "  "}, nil, http.StatusOK, ""},
		{"missing", []string{"k1"}, nil, http.StatusUnauthorized, ""},
		{"x-api-key", []string{"k1", "k2"}, map[string]string{"X-API-Key": "k2"}, http.StatusOK, "k2"},
		{"bearer", []string{"k1"}, map[string]string{"Authorization": "Bearer k1"}, http.StatusOK, "k1"},
		{"wrong key", []string{"k1"}, map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized, ""},
		{"prefix of key", []string{"k1"}, map[string]string{"X-API-Key": "k"}, http.StatusUnauthorized, ""},
		{"basic scheme", []string{"k1"}, map[string]string{"Authorization": "Basic k1"}, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			newAuthEngine(tt.keys).ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != tt.body {
				t.Errorf("stored key = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}
