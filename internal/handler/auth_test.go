package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecosrail/reservation/internal/config"
	"github.com/cecosrail/reservation/internal/repository"
)

// postLogin drives the Login handler directly with a JSON body.  The cases
// below are rejected before any repository call, so the nil-DB repos are
// never touched.
func postLogin(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(config.Config{}, repository.NewUserRepo(nil), repository.NewTokenRepo(nil))
	require.NoError(t, h.Login(c))
	return rec
}

func TestLoginRequiresRole(t *testing.T) {
	rec := postLogin(t, `{"username":"zara","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "role required")
}

func TestLoginRequiresCredentials(t *testing.T) {
	rec := postLogin(t, `{"username":"","password":"","role":"User"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username/password required")
}
