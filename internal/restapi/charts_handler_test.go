package restapi

import (
	"bytes"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendChartHandler(t *testing.T) {
	resp, body := serveRaw(t, createTestApi(t), "/api/ridership/charts/trend/subways.png?width=320&height=200")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
}

func TestTrendChartHandlerNoData(t *testing.T) {
	resp, _ := serveRaw(t, createTestApi(t), "/api/ridership/charts/trend/total?from=2001&to=2002")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestModalShareChartHandler(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveRaw(t, api, "/api/ridership/charts/modal-share/2024.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp, _ = serveRaw(t, api, "/api/ridership/charts/modal-share/1999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = serveRaw(t, api, "/api/ridership/charts/modal-share/2024?width=5")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fieldErrorsOf(t, body), "width")
}
