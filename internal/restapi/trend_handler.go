package restapi

import (
	"net/http"

	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/ridership"
	"github.com/transitstats/mta-ridership/internal/utils"
)

// trendParams reads the selector and the ?from=&to= window, defaulting to the configured
// trend window.
func (api *RestAPI) trendParams(r *http.Request) (ridership.Selector, int, int, utils.FieldErrors) {
	fieldErrors := utils.FieldErrors{}
	sel := utils.ParseSelectorParam(utils.ExtractIDFromParams(r, "selector"), "selector", fieldErrors)

	from, to := api.TrendWindow()
	query := r.URL.Query()
	if y, ok := utils.ParseYearParam(query, "from", fieldErrors); ok {
		from = y
	}
	if y, ok := utils.ParseYearParam(query, "to", fieldErrors); ok {
		to = y
	}
	if len(fieldErrors) == 0 && from > to {
		fieldErrors.Add("from", "from must not be after to")
	}
	return sel, from, to, fieldErrors
}

func (api *RestAPI) trendHandler(w http.ResponseWriter, r *http.Request) {
	sel, from, to, fieldErrors := api.trendParams(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	points := api.Metrics.Trend(sel, from, to)
	api.sendResponse(w, r, models.NewListResponse(models.NewTrendPointModels(points)))
}
