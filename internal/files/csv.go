package files

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const csvPreviewRows = 5

// CSVSummary describes a CSV file: its header, row count and the first rows.
func CSVSummary(data []byte) (string, error) {
	rdr := csv.NewReader(bytes.NewReader(data))
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true

	header, err := rdr.Read()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("csv: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var preview []string
	rows := 0
	for {
		rec, err := rdr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("csv: %w", err)
		}
		rows++
		if len(preview) < csvPreviewRows {
			preview = append(preview, strings.Join(rec, ", "))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Columns: %s\nRows: %d", strings.Join(header, ", "), rows)
	for _, p := range preview {
		b.WriteString("\n")
		b.WriteString(p)
	}
	return b.String(), nil
}
