// Package ocr maps vision-API text bounding boxes into a fixed
// 0-1000 coordinate space so clients can re-project them onto
// arbitrarily resized page images.
package ocr

import (
	"fmt"
	"math"

	"github.com/henryli127-lang/volca/internal/metrics"
)

// NormalizedSpan is the side length of the target coordinate space.
const NormalizedSpan = 1000

// minBoxArea is the noise threshold: boxes smaller than this in
// normalized units are specks and smudges, not text.
const minBoxArea = 4

// Vertex is one corner of a vision-API bounding polygon. Vision APIs
// omit zero-valued coordinates, so missing fields decode as 0.
type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Block is one detected text block with its bounding polygon.
type Block struct {
	Text     string   `json:"text"`
	Vertices []Vertex `json:"vertices"`
}

// Page is a single scanned page with its pixel dimensions.
type Page struct {
	Number int     `json:"number"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Blocks []Block `json:"blocks"`
}

// Box is a normalized bounding box with a stable opaque identifier.
type Box struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

// NormalizePage rescales every block of a page into the 0-1000 space
// and drops boxes below the noise threshold. Identifiers are assigned
// in input order and remain stable across calls with the same input.
func NormalizePage(p Page) ([]Box, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("page %d has invalid dimensions %dx%d", p.Number, p.Width, p.Height)
	}

	boxes := make([]Box, 0, len(p.Blocks))
	for i, block := range p.Blocks {
		box, ok := normalizeBlock(block, p.Width, p.Height)
		if !ok {
			metrics.OCRBoxesDropped.Inc()
			continue
		}
		box.ID = fmt.Sprintf("b%d_%d", p.Number, i)
		boxes = append(boxes, box)
	}
	return boxes, nil
}

func normalizeBlock(b Block, width, height int) (Box, bool) {
	if len(b.Vertices) == 0 {
		return Box{}, false
	}

	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, v := range b.Vertices {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}

	x0 := scale(minX, width)
	y0 := scale(minY, height)
	x1 := scale(maxX, width)
	y1 := scale(maxY, height)

	box := Box{
		Text: b.Text,
		X:    x0,
		Y:    y0,
		W:    x1 - x0,
		H:    y1 - y0,
	}

	if box.W*box.H < minBoxArea {
		return Box{}, false
	}
	return box, true
}

func scale(v, span int) int {
	n := int(math.Round(float64(v) * NormalizedSpan / float64(span)))
	if n < 0 {
		return 0
	}
	if n > NormalizedSpan {
		return NormalizedSpan
	}
	return n
}
