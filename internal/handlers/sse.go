package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

var salesOverviewTemplate = template.Must(template.New("salesOverview").Parse(`
<div id="overview-cards">
<div class="metric"><span>Total Sales</span><strong>{{printf "%.2f" .TotalSales}}</strong></div>
<div class="metric"><span>Total Orders</span><strong>{{.TotalOrders}}</strong></div>
<div class="metric"><span>Avg Order Value</span><strong>{{printf "%.2f" .AvgOrderValue}}</strong></div>
<div class="metric"><span>Active Customers</span><strong>{{.TotalCustomers}}</strong></div>
</div>`))

var retailOverviewTemplate = template.Must(template.New("retailOverview").Parse(`
<div id="overview-cards">
<div class="metric"><span>Total Sales</span><strong>{{printf "%.2f" .TotalSales}}</strong></div>
<div class="metric"><span>Records</span><strong>{{.TotalRecords}}</strong></div>
<div class="metric"><span>Avg Weekly Sales</span><strong>{{printf "%.2f" .AvgWeeklySales}}</strong></div>
<div class="metric"><span>Stores</span><strong>{{.TotalStores}}</strong></div>
</div>`))

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func renderOverview(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder
	err := tmpl.Execute(&buf, data)
	return buf.String(), err
}

// HandleRefreshAll recomputes every section for the request's filter
// selection and pushes the overview cards plus all chart signals in one
// SSE response.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	sel, err := parseSelection(r)
	if err != nil {
		h.logger.Warn("invalid filter selection", "error", err)
		return
	}
	sel = h.dashboard.Normalize(sel)

	switch h.dashboard.Variant() {
	case config.VariantSales:
		h.refreshSales(sse, sel)
	case config.VariantRetail:
		h.refreshRetail(sse, sel)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) refreshSales(sse *datastar.ServerSentEventGenerator, sel models.FilterSelection) {
	views, err := h.dashboard.SalesViews(sel)
	if err != nil {
		h.logger.Error("compute sales views", "error", err)
		return
	}

	html, err := renderOverview(salesOverviewTemplate, views.Overview)
	if err != nil {
		h.logger.Error("render overview cards", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"trendData":       views.Trend,
		"customerData":    views.CustomerDistribution,
		"topProductsData": views.TopProducts,
		"regionSalesData": views.RegionSales,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)
}

func (h *SSEHandlers) refreshRetail(sse *datastar.ServerSentEventGenerator, sel models.FilterSelection) {
	views, err := h.dashboard.RetailViews(sel)
	if err != nil {
		h.logger.Error("compute retail views", "error", err)
		return
	}

	html, err := renderOverview(retailOverviewTemplate, views.Overview)
	if err != nil {
		h.logger.Error("render overview cards", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"trendData":      views.Trend,
		"storeData":      views.StoreAnalysis,
		"departmentData": views.DepartmentAnalysis,
		"envData":        views.Environment,
		"holidayData":    views.Holiday,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)
}
