package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// responseExtensions are stripped from path parameters so /overview/2024 and
// /overview/2024.json address the same resource.
var responseExtensions = []string{".json", ".png", ".xlsx"}

// ExtractIDFromParams retrieves a path parameter from the request context and removes a
// trailing response extension such as ".json".
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	raw := params.ByName(paramName)
	for _, ext := range responseExtensions {
		if strings.HasSuffix(raw, ext) {
			return strings.TrimSuffix(raw, ext)
		}
	}
	return raw
}
