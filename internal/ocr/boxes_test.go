package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(x0, y0, x1, y1 int) []Vertex {
	return []Vertex{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestNormalizePage_ScalesIntoFixedSpace(t *testing.T) {
	page := Page{
		Number: 1,
		Width:  2000,
		Height: 1000,
		Blocks: []Block{
			{Text: "hello", Vertices: quad(200, 100, 600, 200)},
		},
	}

	boxes, err := NormalizePage(page)
	require.NoError(t, err)
	require.Len(t, boxes, 1)

	// x scales by 1000/2000, y by 1000/1000
	assert.Equal(t, Box{ID: "b1_0", Text: "hello", X: 100, Y: 100, W: 200, H: 100}, boxes[0])
}

func TestNormalizePage_InvalidDimensions(t *testing.T) {
	_, err := NormalizePage(Page{Number: 3, Width: 0, Height: 600})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 3")
}

func TestNormalizePage_DropsNoiseBoxes(t *testing.T) {
	page := Page{
		Number: 1,
		Width:  1000,
		Height: 1000,
		Blocks: []Block{
			{Text: ".", Vertices: quad(10, 10, 11, 11)}, // 1x1 unit speck
			{Text: "word", Vertices: quad(50, 50, 150, 80)},
		},
	}

	boxes, err := NormalizePage(page)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "word", boxes[0].Text)
	// id keeps the input index even when earlier blocks are dropped
	assert.Equal(t, "b1_1", boxes[0].ID)
}

func TestNormalizePage_MissingVerticesTreatedAsOrigin(t *testing.T) {
	// Vision APIs omit zero coords; a block touching the origin decodes
	// with implicit zeros.
	page := Page{
		Number: 2,
		Width:  500,
		Height: 500,
		Blocks: []Block{
			{Text: "corner", Vertices: []Vertex{{}, {X: 100}, {X: 100, Y: 50}, {Y: 50}}},
		},
	}

	boxes, err := NormalizePage(page)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, 0, boxes[0].X)
	assert.Equal(t, 0, boxes[0].Y)
	assert.Equal(t, 200, boxes[0].W)
	assert.Equal(t, 100, boxes[0].H)
}

func TestNormalizePage_ClampsOutOfRangeVertices(t *testing.T) {
	// Some providers report vertices slightly outside the page.
	page := Page{
		Number: 1,
		Width:  100,
		Height: 100,
		Blocks: []Block{
			{Text: "edge", Vertices: quad(-5, 90, 110, 105)},
		},
	}

	boxes, err := NormalizePage(page)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, 0, boxes[0].X)
	assert.Equal(t, 1000, boxes[0].X+boxes[0].W)
	assert.Equal(t, 1000, boxes[0].Y+boxes[0].H)
}

func TestNormalizePage_EmptyBlockSkipped(t *testing.T) {
	page := Page{
		Number: 1,
		Width:  100,
		Height: 100,
		Blocks: []Block{{Text: "ghost"}},
	}

	boxes, err := NormalizePage(page)
	require.NoError(t, err)
	assert.Empty(t, boxes)
}
