package vision

import (
	"image"

	"github.com/disintegration/imaging"
)

// Grid нормализованная полутоновая сетка, значения в [0,1], построчно
type Grid struct {
	Width  int
	Height int
	Pix    []float64
}

// NewGrid создаёт сетку заданного размера, заполненную нулями.
func NewGrid(width, height int) *Grid {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// GridFromImage переводит изображение в яркость (веса ITU-R 601) и делит на 255.
func GridFromImage(img image.Image) *Grid {
	if img == nil {
		return NewGrid(0, 0)
	}
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < g.Width; x++ {
			g.Pix[y*g.Width+x] = clampUnit(float64(row[x*4]) / 255.0)
		}
	}
	return g
}

// Len количество отсчётов в сетке
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Pix)
}

// Empty сообщает, что в сетке нет ни одного отсчёта
func (g *Grid) Empty() bool {
	return g.Len() == 0
}

// At возвращает значение в точке (x, y) без проверки границ.
func (g *Grid) At(x, y int) float64 {
	return g.Pix[y*g.Width+x]
}

// Set записывает значение, обрезая его до [0,1].
func (g *Grid) Set(x, y int, v float64) {
	g.Pix[y*g.Width+x] = clampUnit(v)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
