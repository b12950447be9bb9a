package restapi

import (
	"net/http"

	"github.com/transitstats/mta-ridership/internal/models"
)

func (api *RestAPI) modesHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(models.NewModeModels()))
}

func (api *RestAPI) yearsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Metrics.Years()))
}

// latestYear is the default for every year selector.
func (api *RestAPI) latestYear() int {
	years := api.Metrics.Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}
