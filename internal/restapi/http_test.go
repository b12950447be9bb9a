package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitstats/mta-ridership/internal/app"
	"github.com/transitstats/mta-ridership/internal/appconf"
	"github.com/transitstats/mta-ridership/internal/logging"
	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/ridership"
)

func testConfig() appconf.Config {
	cfg := appconf.Default()
	cfg.Env = "test"
	cfg.RateLimit = 0
	return cfg
}

// createTestApi creates a RestAPI backed by the small ridership fixture.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	ds, err := ridership.LoadFile(filepath.Join("..", "..", "testdata", "ridership_small.csv"))
	require.NoError(t, err)

	return createTestApiWith(t, testConfig(), ds)
}

func createTestApiWith(t *testing.T, cfg appconf.Config, ds *ridership.Dataset) *RestAPI {
	t.Helper()

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelInfo)
	api := NewRestAPI(app.New(cfg, logger, ds))
	t.Cleanup(api.Close)
	return api
}

// csvFor renders rows of (date, subways, buses) in the published layout with every other
// mode at zero.
func csvFor(rows ...[3]string) string {
	header := []string{ridership.DateColumn}
	for _, m := range ridership.AllModes() {
		header = append(header, m.RawColumn(), m.RawPctColumn())
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')
	for _, r := range rows {
		cells := []string{r[0]}
		for _, m := range ridership.AllModes() {
			count := "0"
			switch m {
			case ridership.Subways:
				count = r[1]
			case ridership.Buses:
				count = r[2]
			}
			cells = append(cells, count, "")
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*http.Response, models.ResponseModel) {
	return serveApiAndRetrieveEndpoint(t, createTestApi(t), endpoint)
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

func serveRaw(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "entry should be an object")
	return entry
}

func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "list should be an array")
	return list
}

func fieldErrorsOf(t *testing.T, body []byte) map[string][]string {
	t.Helper()

	var response struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(body, &response))
	return response.FieldErrors
}

func TestHealthz(t *testing.T) {
	resp, model := serveAndRetrieveEndpoint(t, "/healthz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, 2, model.Version)

	entry := entryOf(t, model)
	assert.Equal(t, "ok", entry["status"])
	assert.Equal(t, 14.0, entry["rows"])
	assert.Equal(t, "2023-01-02", entry["firstDate"])
	assert.Equal(t, "2024-01-07", entry["lastDate"])
}

func TestModesHandler(t *testing.T) {
	resp, model := serveAndRetrieveEndpoint(t, "/api/ridership/modes.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := listOf(t, model)
	require.Len(t, list, ridership.ModeCount)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "subways", first["id"])
	assert.Equal(t, "Subways", first["name"])
}

func TestYearsHandler(t *testing.T) {
	_, model := serveAndRetrieveEndpoint(t, "/api/ridership/years.json")
	assert.Equal(t, []interface{}{2023.0, 2024.0}, listOf(t, model))
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	resp, model := serveAndRetrieveEndpoint(t, "/api/ridership/nothing-here")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func yearPath(prefix string, year int) string {
	return prefix + strconv.Itoa(year) + ".json"
}
