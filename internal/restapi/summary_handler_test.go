package restapi

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSummaryHandlerJSON(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/ridership/summary/subways.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := listOf(t, model)
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, 2023.0, first["year"])
	assert.Equal(t, 5000.0, first["weekday"])
	assert.Equal(t, 2000.0, first["weekend"])
	assert.Equal(t, 1000.0, first["sunday"])
	assert.Equal(t, 7000.0, first["total"])

	_, model = serveApiAndRetrieveEndpoint(t, api, "/api/ridership/summary/subways?years=2024,2022")
	list = listOf(t, model)
	require.Len(t, list, 2)
	missing := list[0].(map[string]interface{})
	assert.Equal(t, 2022.0, missing["year"])
	assert.Equal(t, 0.0, missing["total"])
}

func TestSummaryHandlerXLSX(t *testing.T) {
	api := createTestApi(t)

	for _, endpoint := range []string{
		"/api/ridership/summary/buses?format=xlsx",
		"/api/ridership/summary/buses.xlsx",
	} {
		resp, body := serveRaw(t, api, endpoint)
		require.Equal(t, http.StatusOK, resp.StatusCode, endpoint)
		assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "buses-period-summary.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(body))
		require.NoError(t, err)
		rows, err := f.GetRows("Buses")
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		_ = f.Close()
	}
}

func TestSummaryHandlerInvalidFormat(t *testing.T) {
	resp, body := serveRaw(t, createTestApi(t), "/api/ridership/summary/buses?format=csv")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fieldErrorsOf(t, body), "format")
}
