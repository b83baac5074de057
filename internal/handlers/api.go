package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const (
	cacheMaxAge = "public, max-age=300"
	dateParam   = "2006-01-02"
)

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

// parseSelection rebuilds the filter selection from query parameters on
// every request; it is never persisted.
func parseSelection(r *http.Request) (models.FilterSelection, error) {
	q := r.URL.Query()
	var sel models.FilterSelection

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(dateParam, v)
		if err != nil {
			return sel, errors.BadRequestWrap(err, "invalid 'from' date, expected YYYY-MM-DD")
		}
		sel.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(dateParam, v)
		if err != nil {
			return sel, errors.BadRequestWrap(err, "invalid 'to' date, expected YYYY-MM-DD")
		}
		sel.To = t
	}
	if v := q.Get("categories"); v != "" {
		sel.Categories = strings.Split(v, ",")
	}
	if v := q.Get("regions"); v != "" {
		sel.Regions = strings.Split(v, ",")
	}
	return sel, nil
}

// section runs the full pipeline for the request's selection and writes
// one view section. A nil picker means the section does not exist in
// the running variant.
func (h *APIHandlers) section(w http.ResponseWriter, r *http.Request,
	fromSales func(models.SalesViews) any,
	fromRetail func(models.RetailViews) any) {

	requestID := observability.GetRequestID(r.Context())

	sel, err := parseSelection(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	sel = h.dashboard.Normalize(sel)

	var data any
	switch h.dashboard.Variant() {
	case config.VariantSales:
		if fromSales == nil {
			errors.WriteError(w, h.logger, errors.NotFound("section not available for the sales dashboard"), requestID)
			return
		}
		views, verr := h.dashboard.SalesViews(sel)
		if verr != nil {
			errors.WriteError(w, h.logger, errors.InternalWrap(verr, "compute sales views"), requestID)
			return
		}
		data = fromSales(views)
	case config.VariantRetail:
		if fromRetail == nil {
			errors.WriteError(w, h.logger, errors.NotFound("section not available for the retail dashboard"), requestID)
			return
		}
		views, verr := h.dashboard.RetailViews(sel)
		if verr != nil {
			errors.WriteError(w, h.logger, errors.InternalWrap(verr, "compute retail views"), requestID)
			return
		}
		data = fromRetail(views)
	}

	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

func (h *APIHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		func(v models.SalesViews) any { return v.Overview },
		func(v models.RetailViews) any { return v.Overview },
	)
}

func (h *APIHandlers) HandleSalesTrend(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		func(v models.SalesViews) any { return v.Trend },
		func(v models.RetailViews) any { return v.Trend },
	)
}

func (h *APIHandlers) HandleCustomerDistribution(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		func(v models.SalesViews) any { return v.CustomerDistribution },
		nil,
	)
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		func(v models.SalesViews) any { return v.TopProducts },
		nil,
	)
}

func (h *APIHandlers) HandleRegionSales(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		func(v models.SalesViews) any { return v.RegionSales },
		nil,
	)
}

func (h *APIHandlers) HandleStoreAnalysis(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		nil,
		func(v models.RetailViews) any { return v.StoreAnalysis },
	)
}

func (h *APIHandlers) HandleDepartmentAnalysis(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		nil,
		func(v models.RetailViews) any { return v.DepartmentAnalysis },
	)
}

func (h *APIHandlers) HandleEnvironmentAnalysis(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		nil,
		func(v models.RetailViews) any { return v.Environment },
	)
}

func (h *APIHandlers) HandleHolidayAnalysis(w http.ResponseWriter, r *http.Request) {
	h.section(w, r,
		nil,
		func(v models.RetailViews) any { return v.Holiday },
	)
}

func (h *APIHandlers) HandleFilters(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.FilterOptions())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"variant":   h.dashboard.Variant(),
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}
