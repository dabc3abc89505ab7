package middleware

import (
	"Sirius/pkg/context"
	"Sirius/pkg/jwt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("mw-secret")

	r := gin.New()
	r.GET("/me", Auth(secret), func(c *gin.Context) {
		uid, err := context.GetUserID(c)
		if err != nil {
			t.Errorf("user id: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})

	valid, err := jwt.GenerateToken(secret, 77, jwt.TypeAccess, time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	expired, err := jwt.GenerateToken(secret, 77, jwt.TypeAccess, -time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	foreign, err := jwt.GenerateToken([]byte("other"), 77, jwt.TypeAccess, time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	cases := map[string]int{
		"":                  http.StatusUnauthorized,
		"Token " + valid:    http.StatusUnauthorized,
		"Bearer " + expired: http.StatusUnauthorized,
		"Bearer " + foreign: http.StatusUnauthorized,
		"Bearer " + valid:   http.StatusOK,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("%q: expected %d, got %d", header, want, w.Code)
		}
	}
}
