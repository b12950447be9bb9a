package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendHandler(t *testing.T) {
	api := createTestApi(t)

	_, model := serveApiAndRetrieveEndpoint(t, api, "/api/ridership/trend/total")
	list := listOf(t, model)
	require.Len(t, list, 14)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "2023-01-02", first["date"])
	assert.Equal(t, 2000.0, first["value"])

	_, model = serveApiAndRetrieveEndpoint(t, api, "/api/ridership/trend/subways.json?from=2024&to=2024")
	list = listOf(t, model)
	require.Len(t, list, 7)
	assert.Equal(t, 600.0, list[6].(map[string]interface{})["value"])

	_, model = serveApiAndRetrieveEndpoint(t, api, "/api/ridership/trend/lirr?from=2010&to=2011")
	assert.Empty(t, listOf(t, model))
}

func TestTrendHandlerValidation(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveRaw(t, api, "/api/ridership/trend/total?from=2024&to=2023")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fieldErrorsOf(t, body), "from")

	resp, body = serveRaw(t, api, "/api/ridership/trend/monorail")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fieldErrorsOf(t, body), "selector")
}
