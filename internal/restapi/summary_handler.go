package restapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/transitstats/mta-ridership/internal/export"
	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// wantsXLSX reports whether the client asked for a spreadsheet, via ?format=xlsx or a
// .xlsx path suffix.
func wantsXLSX(r *http.Request, param string) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "xlsx") {
		return true
	}
	return strings.HasSuffix(httprouter.ParamsFromContext(r.Context()).ByName(param), ".xlsx")
}

// summaryHandler returns weekday/weekend/Sunday totals for ?years= (default: every year).
func (api *RestAPI) summaryHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := utils.FieldErrors{}
	mode := utils.ParseModeParam(utils.ExtractIDFromParams(r, "mode"), "mode", fieldErrors)
	years := utils.ParseYearList(r.URL.Query(), "years", fieldErrors)
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && !strings.EqualFold(format, "xlsx") {
		fieldErrors.Add("format", `Invalid field value for field "format".`)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if len(years) == 0 {
		years = api.Metrics.Years()
	}

	rows := api.Metrics.PeriodSummaries(mode, years)

	if wantsXLSX(r, "mode") {
		var buf bytes.Buffer
		if err := export.WriteSummaryXLSX(&buf, mode, rows); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-period-summary.xlsx"`, mode.Slug()))
		_, _ = w.Write(buf.Bytes())
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewPeriodSummaryModels(rows)))
}
