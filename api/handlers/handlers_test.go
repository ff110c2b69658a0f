package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"roastedin/api/handlers"
	"roastedin/scraper"
	"roastedin/services"
	"roastedin/session"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{scraper.ErrNotProfileURL, http.StatusBadRequest},
		{session.ErrCheckpoint, http.StatusConflict},
		{session.ErrNoSession, http.StatusUnauthorized},
		{scraper.ErrSessionLost, http.StatusUnauthorized},
		{services.ErrQuotaExhausted, http.StatusTooManyRequests},
		{scraper.ErrEmptyProfile, http.StatusUnprocessableEntity},
		{errors.New("gemini exploded"), http.StatusBadGateway},
	}

	for _, c := range cases {
		status, msg := handlers.StatusForError(c.err)
		assert.Equal(t, c.status, status, c.err.Error())
		assert.NotEmpty(t, msg)
	}
}

func TestStatusForErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), services.ErrQuotaExhausted)
	status, _ := handlers.StatusForError(wrapped)
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestRoastProfileHandlerRejectsBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 바인딩 실패는 서비스에 도달하기 전에 끝난다
	handler := handlers.RoastProfileHandler(nil)

	for _, body := range []string{``, `{}`, `{"profile_url": ""}`, `not json`} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/roasts", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		handler(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}
