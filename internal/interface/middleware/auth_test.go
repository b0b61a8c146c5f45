package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellnest/wellnest-api/pkg/helpers"
)

func authRouter(jwt *helpers.JWTManager, role string) *gin.Engine {
	r := gin.New()
	g := r.Group("/", Auth(nil, jwt))
	if role != "" {
		g.Use(RequireRole(role))
	}
	g.GET("whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey)+":"+c.GetString(CtxUserRoleKey))
	})
	return r
}

func TestAuthBearerToken(t *testing.T) {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	token, _, err := jwt.GenerateAccessToken("acct-1", "consumer")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	r := authRouter(jwt, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != "acct-1:consumer" {
		t.Errorf("body = %q", got)
	}
}

func TestAuthCookieToken(t *testing.T) {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	token, _, err := jwt.GenerateAccessToken("acct-2", "practitioner")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	r := authRouter(jwt, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != "acct-2:practitioner" {
		t.Errorf("body = %q", got)
	}
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := helpers.NewJWTManager("wrong-secret", "refresh-secret", time.Minute, time.Hour)
	forged, _, err := other.GenerateAccessToken("acct-1", "consumer")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	r := authRouter(jwt, "")
	cases := []struct {
		name  string
		setup func(req *http.Request)
	}{
		{"no token", func(*http.Request) {}},
		{"garbage", func(req *http.Request) { req.Header.Set("Authorization", "Bearer not-a-jwt") }},
		{"wrong secret", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+forged) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tc.setup(req)
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	token, _, err := jwt.GenerateAccessToken("acct-1", "consumer")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	do := func(role string) int {
		r := authRouter(jwt, role)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("consumer"); code != http.StatusOK {
		t.Errorf("matching role status = %d, want 200", code)
	}
	if code := do("practitioner"); code != http.StatusForbidden {
		t.Errorf("mismatched role status = %d, want 403", code)
	}
}
