package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"sensor-app/utils"
	"sensor-app/views"
)

// ExportController writes session histories to CSV files, one directory per
// export run:
//
//	<export_dir>/<prefix>_YYYYMMDD_HHMMSS_<id>/<sensor>.csv
type ExportController struct {
	storage  utils.StorageConfig
	exporter *views.Exporter
	clock    utils.Clock

	rowsWritten uint64
}

func NewExportController(storage utils.StorageConfig, exporter *views.Exporter) *ExportController {
	if storage.BufferSizeKB > 0 {
		exporter.BufferSizeKB = storage.BufferSizeKB
	}
	return &ExportController{
		storage:  storage,
		exporter: exporter,
		clock:    utils.SystemClock,
	}
}

// NewSessionDir creates a fresh export directory.
func (ec *ExportController) NewSessionDir() (string, error) {
	base := ec.storage.ExportDir
	if base == "" {
		base = os.TempDir()
	}
	id := uuid.NewString()[:8]
	dir := filepath.Join(base, utils.SessionName(ec.storage.SessionPrefix, ec.clock(), id))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return dir, nil
}

// Export writes one session's history into dir and returns the file path.
func (ec *ExportController) Export(rec Recorder, dir string) (string, error) {
	records := rec.Records()
	path, err := ec.exporter.WriteFile(dir, rec.Kind(), records)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", rec.Kind(), err)
	}

	atomic.AddUint64(&ec.rowsWritten, uint64(len(records)))
	utils.ExportsTotal.WithLabelValues(rec.Kind().String()).Inc()
	utils.ExportedRowsTotal.Add(float64(len(records)))
	utils.L().Info("exported %s  (rows=%d, file=%s)", rec.Kind(), len(records), path)
	return path, nil
}

// ExportAll writes every session into a new export directory.
func (ec *ExportController) ExportAll(recs []Recorder) (string, []string, error) {
	dir, err := ec.NewSessionDir()
	if err != nil {
		return "", nil, err
	}
	paths := make([]string, 0, len(recs))
	for _, rec := range recs {
		p, err := ec.Export(rec, dir)
		if err != nil {
			return dir, paths, err
		}
		paths = append(paths, p)
	}
	return dir, paths, nil
}

// RowsWritten returns the total number of sample rows exported.
func (ec *ExportController) RowsWritten() uint64 {
	return atomic.LoadUint64(&ec.rowsWritten)
}
