// Package export converts a finished CSV row log into an XLSX workbook.
// The source file is treated as the writer produced it: unquoted,
// comma-separated, newline-terminated lines.
package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rowlog/rowlog/pkg/logger"
)

// FileMetadata contains metadata about the generated file
type FileMetadata struct {
	Path     string
	Size     int64
	Checksum string
	RowCount int64
}

// ToXLSX reads the CSV log at srcPath and writes an XLSX workbook with a
// single sheet to dstPath, one worksheet row per source line. Returns
// metadata about the written file.
func ToXLSX(srcPath, dstPath, sheetName string, log *logger.Logger) (*FileMetadata, error) {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if log == nil {
		log = logger.Discard()
	}
	slog := log.WithSession("").WithComponent("xlsx_export")
	slog.LogExportStarted("Starting XLSX export", logger.Fields{
		"source": srcPath,
		"target": dstPath,
		"sheet":  sheetName,
	})

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source log: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if sheetName != "Sheet1" {
		index, err := file.NewSheet(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		file.SetActiveSheet(index)
		if err := file.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	stream, err := file.NewStreamWriter(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	var rowCount int64
	row := 1
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		values := make([]interface{}, len(fields))
		for i, f := range fields {
			values[i] = f
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("failed to get cell coordinate: %w", err)
		}
		if err := stream.SetRow(cell, values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
		rowCount++
	}

	if err := stream.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush stream: %w", err)
	}
	if err := file.SaveAs(dstPath); err != nil {
		return nil, fmt.Errorf("failed to save XLSX file: %w", err)
	}

	info, err := os.Stat(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	checksum, err := checksumFile(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum: %w", err)
	}

	meta := &FileMetadata{
		Path:     dstPath,
		Size:     info.Size(),
		Checksum: checksum,
		RowCount: rowCount,
	}
	slog.LogExportCompleted("XLSX export completed", logger.Fields{
		"target":   dstPath,
		"rows":     rowCount,
		"size":     meta.Size,
		"checksum": meta.Checksum,
	})
	return meta, nil
}

// checksumFile calculates the SHA256 checksum of a file
func checksumFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
