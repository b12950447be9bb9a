package restapi

import (
	"net/http"
	"time"

	"github.com/transitstats/mta-ridership/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	ds := api.Data
	health := models.NewHealthModel(time.Now(), ds.Len(), ds.FirstDate(), ds.LastDate(), ds.Years())
	api.sendResponse(w, r, models.NewEntryResponse(health))
}
