package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/transitstats/mta-ridership/internal/app"
	"github.com/transitstats/mta-ridership/internal/logging"
	"github.com/transitstats/mta-ridership/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type WebUI struct {
	*app.Application
	templates *template.Template
}

func NewWebUI(application *app.Application) (*WebUI, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing web templates: %w", err)
	}
	return &WebUI{Application: application, templates: tmpl}, nil
}

var templateFuncs = template.FuncMap{
	"number":  formatNumber,
	"percent": formatPercent,
	"signed":  formatSigned,
	"kpiCard": newKPICard,
}

type kpiCard struct {
	Label string
	KPI   *models.KPIModel
}

func newKPICard(label string, kpi *models.KPIModel) kpiCard {
	return kpiCard{Label: label, KPI: kpi}
}

// formatNumber renders counts with thousands separators, e.g. 14,400.
func formatNumber(v any) string {
	p := message.NewPrinter(language.English)
	switch n := v.(type) {
	case int:
		return p.Sprintf("%d", n)
	case int64:
		return p.Sprintf("%d", n)
	case float64:
		return p.Sprintf("%.0f", math.Round(n))
	default:
		return fmt.Sprint(v)
	}
}

func formatPercent(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.1f%%", v)
}

// formatSigned prefixes gains with "+" so deltas read as changes.
func formatSigned(v float64) string {
	s := formatNumber(v)
	if math.Round(v) > 0 {
		return "+" + s
	}
	return s
}

type pageData struct {
	Title   string
	Active  string
	Years   []int
	Content any
}

// render executes the named template into a buffer first so a failure yields a clean 500.
func (webUI *WebUI) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	data.Years = webUI.Metrics.Years()

	var buf bytes.Buffer
	if err := webUI.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render page", err,
			slog.String("template", name),
			slog.String("component", "webui"))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Status  int
	Message string
}

func (webUI *WebUI) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	webUI.render(w, r, status, "error.html", pageData{
		Title:   http.StatusText(status),
		Content: errorPage{Status: status, Message: msg},
	})
}

func (webUI *WebUI) latestYear() int {
	years := webUI.Metrics.Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}
