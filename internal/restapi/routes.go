package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	router.HandlerFunc(http.MethodGet, "/api/ridership/modes.json", api.modesHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/years.json", api.yearsHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/modal-share/:year", api.modalShareHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/modal-share-comparison.json", api.modalShareComparisonHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/overview/:year", api.overviewHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/segment/:mode", api.segmentHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/kpi/:selector", api.kpiHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/summary/:mode", api.summaryHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/trend/:selector", api.trendHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/charts/trend/:selector", api.trendChartHandler)
	router.HandlerFunc(http.MethodGet, "/api/ridership/charts/modal-share/:year", api.modalShareChartHandler)

	router.NotFound = http.HandlerFunc(api.sendNotFound)
}

// Handler returns a router with the API routes behind the standard middleware chain.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	return api.WithMiddleware(router)
}
