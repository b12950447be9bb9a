package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	before := time.Now().UnixMilli()
	response := NewResponse(http.StatusCreated, map[string]string{"key": "value"}, "Resource Created")
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusCreated, response.Code)
	assert.Equal(t, map[string]string{"key": "value"}, response.Data)
	assert.Equal(t, "Resource Created", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewEntryResponse(t *testing.T) {
	entry := map[string]string{"id": "subways"}

	response := NewEntryResponse(entry)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, entry, data["entry"])
}

func TestNewListResponse(t *testing.T) {
	list := []int{2023, 2024}

	response := NewListResponse(list)

	assert.Equal(t, http.StatusOK, response.Code)
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, list, data["list"])
	assert.False(t, data["limitExceeded"].(bool))
}

func TestNewErrorResponse(t *testing.T) {
	response := NewErrorResponse(http.StatusNotFound, "no ridership recorded for 1999")

	b, err := json.Marshal(response)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"code":404`)
	assert.Contains(t, string(b), `"data":null`)
	assert.Contains(t, string(b), `"text":"no ridership recorded for 1999"`)
}

func TestResponseModelJSONKeys(t *testing.T) {
	b, err := json.Marshal(NewOKResponse("x"))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{"code", "currentTime", "data", "text", "version"} {
		assert.Contains(t, raw, key)
	}
}

func TestNewHealthModelFromResponseSuite(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	h := NewHealthModel(now, 1522, first, last, []int{2020, 2021})
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, now.UnixMilli(), h.Time)
	assert.Equal(t, "2020-03-01", h.FirstDate)
	assert.Equal(t, "2024-04-30", h.LastDate)

	empty := NewHealthModel(now, 0, time.Time{}, time.Time{}, nil)
	assert.Empty(t, empty.FirstDate)
	assert.NotNil(t, empty.Years)
}
