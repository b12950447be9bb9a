package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"github.com/transitstats/mta-ridership/internal/ridership"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data any) {
	webUI.render(w, r, http.StatusOK, "debug_index.html", pageData{
		Title:   title,
		Content: debugData{Title: title, Pre: spew.Sdump(data)},
	})
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data any
	var title string

	switch dataType {
	case "years":
		data = webUI.Data.Years()
		title = "Dataset - Years"
	case "records":
		data = webUI.Data.Records()
		title = "Dataset - Records"
	case "frame":
		data = webUI.Data.Frame().String()
		title = "Dataset - Normalized Frame"
	case "modes":
		data = webUI.modesDebug()
		title = "Dataset - Modes"
	case "config":
		data = webUI.Config
		title = "Runtime Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: years, records, frame, modes, config.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, r, title, data)
}

type modeColumns struct {
	Name      string
	Raw       string
	RawPct    string
	Column    string
	PctColumn string
}

func (webUI *WebUI) modesDebug() []modeColumns {
	var out []modeColumns
	for _, m := range ridership.AllModes() {
		out = append(out, modeColumns{
			Name:      m.String(),
			Raw:       m.RawColumn(),
			RawPct:    m.RawPctColumn(),
			Column:    m.Column(),
			PctColumn: m.PctColumn(),
		})
	}
	return out
}
