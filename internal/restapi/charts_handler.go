package restapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/transitstats/mta-ridership/internal/charts"
	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/utils"
)

// chartSize reads optional ?width=&height= in pixels.
func chartSize(r *http.Request, fieldErrors utils.FieldErrors) charts.Size {
	size := charts.DefaultSize
	for key, dst := range map[string]*int{"width": &size.Width, "height": &size.Height} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 100 || n > 4096 {
			fieldErrors.Add(key, key+" must be between 100 and 4096")
			continue
		}
		*dst = n
	}
	return size
}

func (api *RestAPI) sendPNG(w http.ResponseWriter, r *http.Request, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			api.sendResponse(w, r, models.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(buf.Bytes())
}

func (api *RestAPI) trendChartHandler(w http.ResponseWriter, r *http.Request) {
	sel, from, to, fieldErrors := api.trendParams(r)
	size := chartSize(r, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	points := api.Metrics.Trend(sel, from, to)
	api.sendPNG(w, r, func(buf *bytes.Buffer) error {
		return charts.TrendPNG(buf, sel, points, size)
	})
}

func (api *RestAPI) modalShareChartHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	year := utils.ParseYear(utils.ExtractIDFromParams(r, "year"), "year", fieldErrors)
	size := chartSize(r, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ms, err := api.Metrics.ModalShare(year)
	if err != nil {
		api.derivationErrorResponse(w, r, err)
		return
	}
	api.sendPNG(w, r, func(buf *bytes.Buffer) error {
		return charts.ModalSharePNG(buf, ms, size)
	})
}
