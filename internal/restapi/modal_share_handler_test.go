package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalShareHandler(t *testing.T) {
	resp, model := serveAndRetrieveEndpoint(t, yearPath("/api/ridership/modal-share/", 2023))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryOf(t, model)
	assert.Equal(t, 2023.0, entry["year"])
	assert.Equal(t, 14000.0, entry["total"])

	shares := entry["shares"].([]interface{})
	require.Len(t, shares, 7)
	subways := shares[0].(map[string]interface{})
	assert.Equal(t, "subways", subways["modeId"])
	assert.InDelta(t, 50.0, subways["percent"].(float64), 1e-9)

	var sum float64
	for _, s := range shares {
		sum += s.(map[string]interface{})["percent"].(float64)
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestModalShareHandlerErrors(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/ridership/modal-share/1999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Contains(t, model.Text, "1999")

	resp, body := serveRaw(t, api, "/api/ridership/modal-share/last-year")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fieldErrorsOf(t, body), "year")
}

func TestModalShareComparisonHandler(t *testing.T) {
	api := createTestApi(t)

	t.Run("defaults to first and last year", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/api/ridership/modal-share-comparison.json")
		list := listOf(t, model)
		require.Len(t, list, 2)
		assert.Equal(t, 2023.0, list[0].(map[string]interface{})["year"])
		assert.Equal(t, 2024.0, list[1].(map[string]interface{})["year"])
	})

	t.Run("explicit years keep their order", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/api/ridership/modal-share-comparison.json?years=2024,2023")
		list := listOf(t, model)
		require.Len(t, list, 2)
		assert.Equal(t, 2024.0, list[0].(map[string]interface{})["year"])
	})

	t.Run("unknown year", func(t *testing.T) {
		resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/ridership/modal-share-comparison.json?years=2023,1990")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed years", func(t *testing.T) {
		resp, body := serveRaw(t, api, "/api/ridership/modal-share-comparison.json?years=2023,soon")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, fieldErrorsOf(t, body), "years")
	})
}
