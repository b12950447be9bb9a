package restapi

import (
	"net/http"

	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/utils"
)

func (api *RestAPI) modalShareHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	year := utils.ParseYear(utils.ExtractIDFromParams(r, "year"), "year", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ms, err := api.Metrics.ModalShare(year)
	if err != nil {
		api.derivationErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewModalShareModel(ms)))
}

// modalShareComparisonHandler compares ?years=a,b,...; without the parameter it compares the
// first and last years on record.
func (api *RestAPI) modalShareComparisonHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	years := utils.ParseYearList(r.URL.Query(), "years", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if len(years) == 0 {
		all := api.Metrics.Years()
		if len(all) > 0 {
			years = []int{all[0]}
			if last := all[len(all)-1]; last != all[0] {
				years = append(years, last)
			}
		}
	}

	out, err := api.Metrics.ModalShareComparison(years...)
	if err != nil {
		api.derivationErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewModalShareModels(out)))
}
