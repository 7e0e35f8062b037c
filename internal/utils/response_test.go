// internal/utils/response_test.go
package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
)

func TestRespondErrorHidesInternalCauses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/products", nil)

	cause := errors.New(`pq: connection to "db.internal:5432" refused`)
	RespondError(c, apperrors.Internal(cause, "database error"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db.internal")
	assert.NotContains(t, w.Body.String(), "database error")
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestRespondErrorKeepsClientFacingMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/products/123", nil)

	RespondError(c, apperrors.NotFound("product not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}
