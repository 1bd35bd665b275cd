//go:build !gocv
// +build !gocv

package vision

import (
	"image"

	"defect-inspector/internal/domain/entity"
)

// OpenCVEstimator заглушка для сборки без тега gocv.
type OpenCVEstimator struct{}

func (OpenCVEstimator) Method() entity.EdgeMethod { return entity.EdgeMethodOpenCV }

// Available возвращает false: OpenCV не подключён.
func (OpenCVEstimator) Available() bool { return false }

// Estimate никогда не даёт значения без тега gocv.
func (OpenCVEstimator) Estimate(_ image.Image, _ *Grid) (float64, bool) {
	return 0, false
}
