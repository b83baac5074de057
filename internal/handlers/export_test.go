package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sales-dashboard/internal/report"
)

func TestHandleExportJSON(t *testing.T) {
	dir := t.TempDir()
	h := NewExportHandlers(salesDashboard(), dir, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/export/json", nil)
	w := httptest.NewRecorder()
	h.HandleExportJSON(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result map[string]string
	decodeSuccess(t, w, &result)

	wantPath := filepath.Join(dir, report.JSONFileName)
	if result["path"] != wantPath {
		t.Errorf("expected path %s, got %s", wantPath, result["path"])
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("export file is not valid JSON: %v", err)
	}
	if _, ok := payload["sales_trend"]; !ok {
		t.Error("export missing sales_trend section")
	}
}

func TestHandleExportJSONInvalidSelection(t *testing.T) {
	h := NewExportHandlers(salesDashboard(), t.TempDir(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/export/json?to=garbage", nil)
	w := httptest.NewRecorder()
	h.HandleExportJSON(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleReportDownload(t *testing.T) {
	h := NewExportHandlers(retailDashboard(), t.TempDir(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/export/report?from=2012-02-01&to=2012-02-29", nil)
	w := httptest.NewRecorder()
	h.HandleReportDownload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("expected content type %s, got %s", xlsxContentType, got)
	}

	disposition := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, `attachment; filename="retail_report_`) {
		t.Errorf("unexpected content disposition %q", disposition)
	}
	if !strings.HasSuffix(disposition, `.xlsx"`) {
		t.Errorf("expected .xlsx filename, got %q", disposition)
	}

	// xlsx files are zip archives.
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("response body is not a workbook")
	}
}
