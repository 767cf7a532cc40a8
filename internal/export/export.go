// Package export renders submissions as downloadable CSV and PDF reports.
package export

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("export: no data")

// Format names an export flavour.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// File is a rendered export ready to be served or archived.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func fileName(prefix, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%d.%s", prefix, at.UnixMilli(), ext)
}
