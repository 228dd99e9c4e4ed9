package layout

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports the rendered width of a string at a font size in pixels.
type Measurer interface {
	Measure(text string, size float64) float64
}

// FontMeasurer measures text with a TrueType font. Faces are created per size
// and cached; it is safe for concurrent use.
type FontMeasurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFontMeasurer returns a measurer backed by the Go Regular font, which
// covers Latin and Cyrillic.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

func (m *FontMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Measure returns the advance width of text. It falls back to an estimate
// if a face cannot be created for the size.
func (m *FontMeasurer) Measure(text string, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.face(size)
	if err != nil {
		return RuneMeasurer(0.6).Measure(text, size)
	}
	return float64(font.MeasureString(f, text)) / 64
}

// RuneMeasurer assumes every rune is the given fraction of the font size wide.
type RuneMeasurer float64

func (r RuneMeasurer) Measure(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * float64(r)
}

// Wrap breaks text into lines no wider than budget, adding words greedily.
// A single word wider than the budget gets a line of its own.
func Wrap(text string, budget, size float64, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := ""
	for i, w := range words {
		candidate := line + w + " "
		if i > 0 && m.Measure(candidate, size) > budget {
			lines = append(lines, strings.TrimSpace(line))
			line = w + " "
			continue
		}
		line = candidate
	}
	return append(lines, strings.TrimSpace(line))
}
