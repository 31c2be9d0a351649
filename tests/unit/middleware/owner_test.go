package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"expodocs/internal/middleware"
)

func ownerRouter() (*gin.Engine, *uuid.UUID) {
	var got uuid.UUID
	r := gin.New()
	r.Use(middleware.OwnerContext())
	r.GET("/test", func(c *gin.Context) {
		ownerID, err := middleware.GetOwnerID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		got = ownerID
		c.Status(http.StatusOK)
	})
	return r, &got
}

func TestOwnerContext_ValidHeader(t *testing.T) {
	r, got := ownerRouter()
	ownerID := uuid.New()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.OwnerHeader, ownerID.String())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ownerID, *got)
}

func TestOwnerContext_MissingHeader(t *testing.T) {
	r, _ := ownerRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_OWNER")
}

func TestOwnerContext_MalformedHeader(t *testing.T) {
	r, _ := ownerRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.OwnerHeader, "not-a-uuid")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_OWNER")
}
