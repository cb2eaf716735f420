package files

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name, mime string
		data       []byte
		want       Kind
	}{
		{"menu.pdf", "", []byte("whatever"), KindPDF},
		{"blob", "", []byte("%PDF-1.4\n..."), KindPDF},
		{"page.htm", "", []byte("x"), KindHTML},
		{"x", "text/html; charset=utf-8", []byte("x"), KindHTML},
		{"sheet.csv", "", []byte("a,b"), KindCSV},
		{"notes.txt", "", []byte("hi"), KindText},
		{"data.json", "application/json", []byte("{}"), KindText},
		{"unnamed", "", []byte("plain words here"), KindText},
		{"photo.JPG", "", []byte{0xff, 0xd8}, KindImage},
		{"doc.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte{0x50, 0x4b, 0x03, 0x04}, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.name, tt.mime, tt.data))
		})
	}
}

func TestExtractHTML(t *testing.T) {
	doc := `<html><head><title>t</title><style>body{}</style></head>
<body><h1>Lemon   Tart</h1><script>alert(1)</script><ul><li>3 lemons</li><li>sugar</li></ul><p>Bake 30 min.</p></body></html>`
	out, err := Extract("tart.html", "text/html", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Lemon Tart\n3 lemons\nsugar\nBake 30 min.", out)
}

func TestExtractCSV(t *testing.T) {
	data := "ingredient, grams\nflour,500\nsugar,200\n"
	out, err := Extract("pantry.csv", "text/csv", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "Columns: ingredient, grams\nRows: 2\nflour, 500\nsugar, 200", out)

	out, err = Extract("empty.csv", "text/csv", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExtractTextTruncates(t *testing.T) {
	long := strings.Repeat("é", MaxExcerptRunes+50)
	out, err := Extract("long.txt", "text/plain", []byte(long))
	require.NoError(t, err)
	assert.Equal(t, MaxExcerptRunes, len([]rune(out)))
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Extract("bad.txt", "text/plain", []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtractBrokenPDF(t *testing.T) {
	_, err := Extract("broken.pdf", "application/pdf", []byte("%PDF-1.4 not really"))
	assert.Error(t, err)
}

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 400))
	for x := 0; x < 800; x++ {
		src.Set(x, 200, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	out, err := Thumbnail(buf.Bytes(), 100)
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)

	small := image.NewRGBA(image.Rect(0, 0, 10, 20))
	buf.Reset()
	require.NoError(t, jpeg.Encode(&buf, small, nil))
	out, err = Thumbnail(buf.Bytes(), 100)
	require.NoError(t, err)
	cfg, _, err = image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Width)

	_, err = Thumbnail([]byte("not an image"), 100)
	assert.Error(t, err)
}
