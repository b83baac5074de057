package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandlers struct {
	dashboard *services.Dashboard
	exportDir string
	logger    *slog.Logger
}

func NewExportHandlers(dashboard *services.Dashboard, exportDir string, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{
		dashboard: dashboard,
		exportDir: exportDir,
		logger:    logger,
	}
}

// HandleExportJSON rewrites mockplus_data.json for the request's filter
// selection. An export failure is reported to the caller; the loaded
// tables are untouched either way.
func (h *ExportHandlers) HandleExportJSON(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	sel, err := parseSelection(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	sel = h.dashboard.Normalize(sel)

	path, err := h.dashboard.ExportJSON(h.exportDir, sel)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	h.logger.Info("report exported", "path", path, "request_id", requestID)
	errors.WriteSuccess(w, map[string]string{"path": path})
}

// HandleReportDownload streams the report workbook as an attachment.
// Nothing is persisted server-side beyond the response.
func (h *ExportHandlers) HandleReportDownload(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	sel, err := parseSelection(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	sel = h.dashboard.Normalize(sel)

	data, filename, err := h.dashboard.Workbook(sel, time.Now())
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("write report download", "error", err, "request_id", requestID)
	}
}
