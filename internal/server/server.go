package server

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/services"
)

type Server struct {
	dashboard      *services.Dashboard
	mux            *http.ServeMux
	logger         *slog.Logger
	apiHandlers    *handlers.APIHandlers
	sseHandlers    *handlers.SSEHandlers
	exportHandlers *handlers.ExportHandlers
}

func NewServer(dashboard *services.Dashboard, exportDir string, logger *slog.Logger, page http.HandlerFunc) *Server {
	s := &Server{
		dashboard:      dashboard,
		mux:            http.NewServeMux(),
		logger:         logger,
		apiHandlers:    handlers.NewAPIHandlers(dashboard, logger),
		sseHandlers:    handlers.NewSSEHandlers(dashboard, logger),
		exportHandlers: handlers.NewExportHandlers(dashboard, exportDir, logger),
	}
	s.setupRoutes(page)
	return s
}

func (s *Server) setupRoutes(page http.HandlerFunc) {
	// Dashboard routes. The page matches the root exactly; unknown paths
	// fall through to the mux's own 404/405 handling.
	s.mux.HandleFunc("GET /{$}", page)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints shared by both variants
	s.mux.HandleFunc("GET /api/filters", s.apiHandlers.HandleFilters)
	s.mux.HandleFunc("GET /api/overview", s.apiHandlers.HandleOverview)
	s.mux.HandleFunc("GET /api/sales-trend", s.apiHandlers.HandleSalesTrend)

	// Variant-specific sections
	switch s.dashboard.Variant() {
	case config.VariantSales:
		s.mux.HandleFunc("GET /api/customer-distribution", s.apiHandlers.HandleCustomerDistribution)
		s.mux.HandleFunc("GET /api/top-products", s.apiHandlers.HandleTopProducts)
		s.mux.HandleFunc("GET /api/region-sales", s.apiHandlers.HandleRegionSales)
	case config.VariantRetail:
		s.mux.HandleFunc("GET /api/store-analysis", s.apiHandlers.HandleStoreAnalysis)
		s.mux.HandleFunc("GET /api/department-analysis", s.apiHandlers.HandleDepartmentAnalysis)
		s.mux.HandleFunc("GET /api/environment-analysis", s.apiHandlers.HandleEnvironmentAnalysis)
		s.mux.HandleFunc("GET /api/holiday-analysis", s.apiHandlers.HandleHolidayAnalysis)
	}

	// Export endpoints
	s.mux.HandleFunc("POST /api/export/json", s.exportHandlers.HandleExportJSON)
	s.mux.HandleFunc("GET /export/report", s.exportHandlers.HandleReportDownload)

	// Datastar SSE endpoint: one filter change refreshes everything
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
