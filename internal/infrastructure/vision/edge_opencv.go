//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"defect-inspector/internal/domain/entity"
)

// OpenCVEstimator считает Собеля через OpenCV с границей BorderReflect.
type OpenCVEstimator struct{}

func (OpenCVEstimator) Method() entity.EdgeMethod { return entity.EdgeMethodOpenCV }

// Available в сборке с тегом gocv всегда true.
func (OpenCVEstimator) Available() bool { return true }

// Estimate переносит сетку в матрицу CV_32F и усредняет величину градиента.
func (OpenCVEstimator) Estimate(_ image.Image, g *Grid) (float64, bool) {
	if g == nil {
		return 0, false
	}
	if g.Empty() {
		return 0, true
	}

	src := gocv.NewMatWithSize(g.Height, g.Width, gocv.MatTypeCV32F)
	defer src.Close()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			src.SetFloatAt(y, x, float32(g.At(x, y)))
		}
	}

	gx := gocv.NewMat()
	defer gx.Close()
	gocv.Sobel(src, &gx, gocv.MatTypeCV32F, 1, 0, 3, 1, 0, gocv.BorderReflect)

	gy := gocv.NewMat()
	defer gy.Close()
	gocv.Sobel(src, &gy, gocv.MatTypeCV32F, 0, 1, 3, 1, 0, gocv.BorderReflect)

	mag := gocv.NewMat()
	defer mag.Close()
	gocv.Magnitude(gx, gy, &mag)
	if mag.Empty() {
		return 0, false
	}

	return mag.Mean().Val1, true
}
