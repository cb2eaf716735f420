// Package files derives text excerpts and thumbnails from uploaded files so
// they can be summarized into prompts and previewed.
package files

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxExcerptRunes caps the stored excerpt of one file.
const MaxExcerptRunes = 2000

var ErrUnsupported = errors.New("unsupported file type")

type Kind string

const (
	KindPDF     Kind = "pdf"
	KindHTML    Kind = "html"
	KindCSV     Kind = "csv"
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindUnknown Kind = "unknown"
)

// Detect classifies a file by extension, declared MIME type and content sniffing.
func Detect(name, mime string, data []byte) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	mime = strings.ToLower(mime)
	if mime == "" || mime == "application/octet-stream" {
		mime = strings.ToLower(http.DetectContentType(data))
	}
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")) || ext == "pdf" || strings.Contains(mime, "pdf"):
		return KindPDF
	case strings.HasPrefix(mime, "image/") || ext == "png" || ext == "jpg" || ext == "jpeg" || ext == "gif":
		return KindImage
	case ext == "html" || ext == "htm" || strings.Contains(mime, "html"):
		return KindHTML
	case ext == "csv" || strings.Contains(mime, "csv"):
		return KindCSV
	case ext == "txt" || ext == "md" || ext == "markdown" || ext == "json" || ext == "log" ||
		strings.HasPrefix(mime, "text/") || strings.Contains(mime, "json"):
		return KindText
	}
	return KindUnknown
}

// Extract returns a text excerpt for text-bearing files. Images and unknown
// binaries return ErrUnsupported.
func Extract(name, mime string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch Detect(name, mime, data) {
	case KindPDF:
		text, err = PDFText(data, maxPDFPages)
	case KindHTML:
		text, err = HTMLText(data)
	case KindCSV:
		text, err = CSVSummary(data)
	case KindText:
		if !utf8.Valid(data) {
			return "", ErrUnsupported
		}
		text = strings.TrimSpace(string(data))
	default:
		return "", ErrUnsupported
	}
	if err != nil {
		return "", err
	}
	return truncate(text, MaxExcerptRunes), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
