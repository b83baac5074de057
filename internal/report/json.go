package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sales-dashboard/internal/errors"
)

// WriteJSON renders the payload as indented UTF-8 JSON and replaces
// dir/mockplus_data.json. The write goes to a temp file first and is
// renamed on success, so a crash mid-write never leaves a truncated
// document behind. Returns the final path.
func WriteJSON(dir string, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", errors.ExportFailed(err, "marshal report payload")
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".mockplus-*.json")
	if err != nil {
		return "", errors.ExportFailed(err, "create temp export file")
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.ExportFailed(err, "write temp export file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.ExportFailed(err, "close temp export file")
	}

	path := filepath.Join(dir, JSONFileName)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", errors.ExportFailed(err, fmt.Sprintf("replace %s", JSONFileName))
	}
	return path, nil
}
