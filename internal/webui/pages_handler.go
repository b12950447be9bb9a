package webui

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/ridership"
	"github.com/transitstats/mta-ridership/internal/utils"
)

type aboutPage struct {
	Rows      int
	FirstDate string
	LastDate  string
	Modes     []models.ModeModel
	Source    string
}

func (webUI *WebUI) aboutHandler(w http.ResponseWriter, r *http.Request) {
	webUI.render(w, r, http.StatusOK, "about.html", pageData{
		Title:  "About",
		Active: "about",
		Content: aboutPage{
			Rows:      webUI.Data.Len(),
			FirstDate: webUI.Data.FirstDate().Format(models.DateLayout),
			LastDate:  webUI.Data.LastDate().Format(models.DateLayout),
			Modes:     models.NewModeModels(),
			Source:    webUI.Config.DataSource,
		},
	})
}

// yearQuery reads ?year=, defaulting to the latest year on record.
func (webUI *WebUI) yearQuery(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return webUI.latestYear(), true
	}
	fieldErrors := utils.FieldErrors{}
	year := utils.ParseYear(raw, "year", fieldErrors)
	return year, len(fieldErrors) == 0
}

// pageError renders derivation failures: a year with no records is a 404, anything else a 500.
func (webUI *WebUI) pageError(w http.ResponseWriter, r *http.Request, err error) {
	var empty *ridership.EmptyPeriodError
	if errors.As(err, &empty) {
		webUI.renderError(w, r, http.StatusNotFound, err.Error())
		return
	}
	webUI.renderError(w, r, http.StatusInternalServerError, "The page could not be built.")
}

type overviewPage struct {
	models.OverviewModel
	ChartURL string
}

func (webUI *WebUI) overviewHandler(w http.ResponseWriter, r *http.Request) {
	year, ok := webUI.yearQuery(r)
	if !ok {
		webUI.renderError(w, r, http.StatusBadRequest, "Invalid year.")
		return
	}

	overview, err := models.BuildOverview(webUI.Metrics, year)
	if err != nil {
		webUI.pageError(w, r, err)
		return
	}

	webUI.render(w, r, http.StatusOK, "overview.html", pageData{
		Title:  "Overview",
		Active: "overview",
		Content: overviewPage{
			OverviewModel: overview,
			ChartURL:      fmt.Sprintf("/api/ridership/charts/modal-share/%d.png", year),
		},
	})
}

type segmentPage struct {
	models.SegmentModel
	Modes    []models.ModeModel
	ChartURL string
	XLSXURL  string
}

func (webUI *WebUI) segmentHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mode := ridership.Subways
	if raw := query.Get("mode"); raw != "" {
		fieldErrors := utils.FieldErrors{}
		mode = utils.ParseModeParam(raw, "mode", fieldErrors)
		if len(fieldErrors) > 0 {
			webUI.renderError(w, r, http.StatusBadRequest, "Unknown mode.")
			return
		}
	}

	year, ok := webUI.yearQuery(r)
	if !ok {
		webUI.renderError(w, r, http.StatusBadRequest, "Invalid year.")
		return
	}
	if !webUI.Data.HasYear(year) {
		webUI.pageError(w, r, &ridership.EmptyPeriodError{Year: year})
		return
	}

	segment, err := models.BuildSegment(webUI.Metrics, mode, year)
	if err != nil {
		webUI.pageError(w, r, err)
		return
	}

	from, to := webUI.TrendWindow()
	webUI.render(w, r, http.StatusOK, "segment.html", pageData{
		Title:  mode.String(),
		Active: "segment",
		Content: segmentPage{
			SegmentModel: segment,
			Modes:        models.NewModeModels(),
			ChartURL:     fmt.Sprintf("/api/ridership/charts/trend/%s.png?from=%d&to=%d", mode.Slug(), from, to),
			XLSXURL:      fmt.Sprintf("/api/ridership/summary/%s.xlsx", mode.Slug()),
		},
	})
}
