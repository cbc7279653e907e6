package http

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/daftar-app/daftar/internal/adapters/handler/http/middleware"
	"github.com/daftar-app/daftar/internal/core/domain"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func errorContext(subject string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/cigarettes/today/add", nil)
	if subject != "" {
		c.Set(middleware.ContextSubjectKey, subject)
	}
	return c, w
}

func TestHandleError(t *testing.T) {
	t.Run("Internal errors are logged with the token subject", func(t *testing.T) {
		buf := captureLog(t)
		c, w := errorContext("owner")

		handleError(c, errors.New("disk full"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, buf.String(), "by owner failed: disk full")
	})

	t.Run("Open API logs an anonymous caller", func(t *testing.T) {
		buf := captureLog(t)
		c, _ := errorContext("")

		handleError(c, errors.New("disk full"))

		assert.Contains(t, buf.String(), "by anonymous failed")
	})

	t.Run("Version conflict maps to 409", func(t *testing.T) {
		c, w := errorContext("")

		handleError(c, fmt.Errorf("saving: %w", domain.ErrCigaretteConflict))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
