package restapi

import (
	"net/http"

	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/ridership"
	"github.com/transitstats/mta-ridership/internal/utils"
)

// yearQuery reads ?year=, defaulting to the latest year on record.
func (api *RestAPI) yearQuery(r *http.Request, fieldErrors utils.FieldErrors) int {
	if y, ok := utils.ParseYearParam(r.URL.Query(), "year", fieldErrors); ok {
		return y
	}
	return api.latestYear()
}

func (api *RestAPI) overviewHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	year := utils.ParseYear(utils.ExtractIDFromParams(r, "year"), "year", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	overview, err := models.BuildOverview(api.Metrics, year)
	if err != nil {
		api.derivationErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(overview))
}

func (api *RestAPI) segmentHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	mode := utils.ParseModeParam(utils.ExtractIDFromParams(r, "mode"), "mode", fieldErrors)
	year := api.yearQuery(r, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	segment, err := models.BuildSegment(api.Metrics, mode, year)
	if err != nil {
		api.derivationErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(segment))
}

// kpiHandler serves one KPI strictly: every derivation error maps to an error status.
// The selector "total" means the overview KPIs.
func (api *RestAPI) kpiHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	sel := utils.ParseSelectorParam(utils.ExtractIDFromParams(r, "selector"), "selector", fieldErrors)
	year := api.yearQuery(r, fieldErrors)

	metric := ridership.KPIMetric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = ridership.MetricRidership
	}
	if metric != ridership.MetricRidership && metric != ridership.MetricRecovery {
		fieldErrors.Add("metric", `Invalid field value for field "metric".`)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	var (
		k   ridership.KPI
		err error
	)
	switch {
	case sel.Total && metric == ridership.MetricRidership:
		k, err = api.Metrics.OverviewKPI(year)
	case sel.Total:
		k, err = api.Metrics.OverviewRecoveryKPI(year)
	case metric == ridership.MetricRidership:
		k, err = api.Metrics.SegmentKPI(year, sel.Mode)
	default:
		k, err = api.Metrics.SegmentRecoveryKPI(year, sel.Mode)
	}
	if err != nil {
		api.derivationErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewKPIModel(k)))
}
