package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("mw-secret")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JwtAuthMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("address"))
	})
	return r
}

func get(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJwtAuthMiddleware(t *testing.T) {
	r := router()
	valid := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"sub": "0xABC",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := get(r, "/me", "Bearer "+valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xABC", w.Body.String())

	// WebSocket 场景：查询参数
	w = get(r, "/me?token="+valid, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xABC", w.Body.String())
}

func TestJwtAuthMiddlewareRejects(t *testing.T) {
	r := router()

	expired := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"sub": "0xABC",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	wrongKey := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "0xABC"})
	wrongAlg := sign(t, jwt.SigningMethodHS512, secret, jwt.MapClaims{"sub": "0xABC"})
	noSub := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	cases := map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"garbage":    "Bearer not.a.jwt",
		"expired":    "Bearer " + expired,
		"wrong key":  "Bearer " + wrongKey,
		"wrong alg":  "Bearer " + wrongAlg,
		"no sub":     "Bearer " + noSub,
	}
	for name, auth := range cases {
		t.Run(name, func(t *testing.T) {
			w := get(r, "/me", auth)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
