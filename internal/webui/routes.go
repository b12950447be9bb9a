package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (webUI *WebUI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.aboutHandler)
	router.HandlerFunc(http.MethodGet, "/about", webUI.aboutHandler)
	router.HandlerFunc(http.MethodGet, "/overview", webUI.overviewHandler)
	router.HandlerFunc(http.MethodGet, "/segment", webUI.segmentHandler)
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
