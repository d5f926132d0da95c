package newrelic

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitNewRelic_Disabled(t *testing.T) {
	assert.Nil(t, InitNewRelic(&models.Config{}))
	assert.Nil(t, InitNewRelic(&models.Config{NewRelic: models.NewRelicConfig{Enabled: true}}))
}

func TestEchoMiddleware_NoApp(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	h := EchoMiddleware(nil)(func(c echo.Context) error { return c.NoContent(http.StatusAccepted) })
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
