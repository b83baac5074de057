package handlers

import (
	"html/template"
	"net/http"

	"sales-dashboard/internal/services"
)

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body { font-family: sans-serif; margin: 2rem; background: #f7f8fa; }
.metric { display: inline-block; background: #fff; border-radius: .5rem; padding: 1rem; margin: .5rem; box-shadow: 0 2px 4px rgba(0,0,0,.1); }
.metric span { display: block; color: #667; font-size: .8rem; }
.controls { margin-bottom: 1rem; }
</style>
</head>
<body data-signals="{trendData: [], filters: {from: '{{.Options.MinDate}}', to: '{{.Options.MaxDate}}'}}">
<h1>{{.Title}}</h1>
<div class="controls">
<input type="date" data-bind-filters.from min="{{.Options.MinDate}}" max="{{.Options.MaxDate}}">
<input type="date" data-bind-filters.to min="{{.Options.MinDate}}" max="{{.Options.MaxDate}}">
<button data-on-click="@get('/sse/refresh-all?from='+$filters.from+'&to='+$filters.to)">Apply</button>
<button data-on-click="window.location='/export/report?from='+$filters.from+'&to='+$filters.to">Download report</button>
</div>
<div id="overview-cards"></div>
<div id="charts" data-on-load="@get('/sse/refresh-all')"></div>
</body>
</html>`))

type pageData struct {
	Title   string
	Options services.FilterOptions
}

// NewPageHandler serves the single-page dashboard shell; all data
// arrives over the SSE and API endpoints.
func NewPageHandler(dashboard *services.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := "Sales Analytics Dashboard"
		if dashboard.Variant() == "retail" {
			title = "Retail Analytics Dashboard"
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{Title: title, Options: dashboard.FilterOptions()}
		if err := dashboardPage.Execute(w, data); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}
