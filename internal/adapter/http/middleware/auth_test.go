package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

func newAuthRouter(issuer string) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(testSecret, issuer))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, CallerID(c))
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid token sets caller id", func(t *testing.T) {
		token, err := GenerateToken(testSecret, "", "F1", time.Hour)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		w := doGet(newAuthRouter(""), "Bearer "+token)
		if w.Code != http.StatusOK || w.Body.String() != "F1" {
			t.Fatalf("expected 200 F1, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("subject is used when user_id is absent", func(t *testing.T) {
		claims := jwt.RegisteredClaims{Subject: "C1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		w := doGet(newAuthRouter(""), "Bearer "+token)
		if w.Code != http.StatusOK || w.Body.String() != "C1" {
			t.Fatalf("expected 200 C1, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("missing header", func(t *testing.T) {
		w := doGet(newAuthRouter(""), "")
		if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "UNAUTHENTICATED") {
			t.Fatalf("expected 401, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := GenerateToken("other", "", "F1", time.Hour)
		if w := doGet(newAuthRouter(""), "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := GenerateToken(testSecret, "", "F1", -time.Minute)
		if w := doGet(newAuthRouter(""), "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		token, _ := GenerateToken(testSecret, "someone-else", "F1", time.Hour)
		if w := doGet(newAuthRouter("quotes"), "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		claims := Claims{UserID: "F1", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		if w := doGet(newAuthRouter(""), "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestGenerateToken_RequiresUser(t *testing.T) {
	if _, err := GenerateToken(testSecret, "", " ", time.Hour); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestAccessLogAndRecover(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := gin.New()
	r.Use(AccessLog(logger), Recover(logger))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	out := buf.String()
	if !strings.Contains(out, `"panic":"boom"`) || !strings.Contains(out, `"status":500`) || !strings.Contains(out, `"route":"/boom"`) {
		t.Fatalf("unexpected log output %s", out)
	}
}
