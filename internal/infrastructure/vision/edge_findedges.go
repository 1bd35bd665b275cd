package vision

import (
	"image"

	"github.com/disintegration/imaging"

	"defect-inspector/internal/domain/entity"
)

var findEdgesKernel = [9]float64{
	-1, -1, -1,
	-1, 8, -1,
	-1, -1, -1,
}

// FindEdgesEstimator приближение: средняя яркость после фильтра FIND_EDGES.
// С Собелем побитово не совпадает. На краях кадра тоже приближение:
// Convolve3x3 повторяет крайние пиксели, а PIL оставляет рамку без фильтра.
type FindEdgesEstimator struct{}

func (FindEdgesEstimator) Method() entity.EdgeMethod { return entity.EdgeMethodFindEdges }

func (FindEdgesEstimator) Available() bool { return true }

// Estimate требует исходное изображение.
func (FindEdgesEstimator) Estimate(src image.Image, _ *Grid) (float64, bool) {
	if src == nil {
		return 0, false
	}
	b := src.Bounds()
	if b.Empty() {
		return 0, true
	}
	// Отрицательные отклики обрезаются до 0.
	edges := imaging.Convolve3x3(imaging.Grayscale(src), findEdgesKernel, nil)
	return MeanBrightness(GridFromImage(edges)), true
}
