package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ShubhamPatel2305/Vroomify/helpers"
	"github.com/gin-gonic/gin"
)

// The collection is nil in these tests: every case must be rejected before
// any database access.
func setupRouter(tokens *helpers.TokenMaker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Authenticate(tokens, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("uid")})
	})
	return r
}

func TestAuthenticate_MissingToken(t *testing.T) {
	r := setupRouter(helpers.NewTokenMaker("secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	r := setupRouter(helpers.NewTokenMaker("secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("authorization", "not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	r := setupRouter(helpers.NewTokenMaker("server-secret"))

	tok, err := helpers.NewTokenMaker("other-secret").GenerateToken("u1", "U", "u@example.com")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("authorization", tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
