package vision

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"defect-inspector/internal/domain/entity"
)

// Названия бэкендов силы границ в конфигурации
const (
	BackendSobel     = "sobel"
	BackendOpenCV    = "opencv"
	BackendFindEdges = "find_edges"
)

// ErrUnknownBackend неизвестное имя бэкенда
var ErrUnknownBackend = errors.New("unknown edge backend")

// EdgeEstimator способ оценки силы границ.
type EdgeEstimator interface {
	// Method имя способа для результата
	Method() entity.EdgeMethod

	// Available проверяет, доступен ли способ в этой сборке
	Available() bool

	// Estimate возвращает силу границ; false, если для этих данных оценка невозможна
	Estimate(src image.Image, g *Grid) (float64, bool)
}

// EdgeChain перебирает способы по порядку и берёт первый доступный, давший значение.
type EdgeChain struct {
	estimators []EdgeEstimator
}

// NewEdgeChain собирает цепочку: основной способ, затем запасные.
func NewEdgeChain(primary EdgeEstimator, fallbacks ...EdgeEstimator) *EdgeChain {
	chain := &EdgeChain{}
	if primary != nil {
		chain.estimators = append(chain.estimators, primary)
	}
	for _, f := range fallbacks {
		if f != nil {
			chain.estimators = append(chain.estimators, f)
		}
	}
	return chain
}

// NewEdgeChainForBackend строит цепочку по имени бэкенда, FIND_EDGES всегда последний.
func NewEdgeChainForBackend(name string) (*EdgeChain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendSobel:
		return NewEdgeChain(SobelEstimator{}, FindEdgesEstimator{}), nil
	case BackendOpenCV:
		return NewEdgeChain(OpenCVEstimator{}, FindEdgesEstimator{}), nil
	case BackendFindEdges:
		return NewEdgeChain(FindEdgesEstimator{}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Estimate возвращает силу границ и способ, которым она получена.
// Если ни один способ не сработал, сила границ 0.
func (c *EdgeChain) Estimate(src image.Image, g *Grid) (float64, entity.EdgeMethod) {
	for _, e := range c.estimators {
		if !e.Available() {
			continue
		}
		if v, ok := e.Estimate(src, g); ok {
			return v, e.Method()
		}
	}
	return 0, entity.EdgeMethodNone
}

// Methods перечисляет способы цепочки, доступные в этой сборке
func (c *EdgeChain) Methods() []entity.EdgeMethod {
	out := make([]entity.EdgeMethod, 0, len(c.estimators))
	for _, e := range c.estimators {
		if e.Available() {
			out = append(out, e.Method())
		}
	}
	return out
}

var (
	sobelX = [3][3]float64{
		{1, 0, -1},
		{2, 0, -2},
		{1, 0, -1},
	}
	sobelY = [3][3]float64{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	}
)

// SobelEstimator средняя величина градиента Собеля с зеркальной границей.
type SobelEstimator struct{}

func (SobelEstimator) Method() entity.EdgeMethod { return entity.EdgeMethodSobel }

func (SobelEstimator) Available() bool { return true }

// Estimate работает только по сетке, исходное изображение не нужно.
func (SobelEstimator) Estimate(_ image.Image, g *Grid) (float64, bool) {
	if g == nil {
		return 0, false
	}
	if g.Empty() {
		return 0, true
	}
	w, h := g.Width, g.Height
	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				py := reflectIndex(y+ky, h)
				for kx := -1; kx <= 1; kx++ {
					v := g.Pix[py*w+reflectIndex(x+kx, w)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			sum += math.Hypot(gx, gy)
		}
	}
	return sum / float64(w*h), true
}

// reflectIndex отражает индекс за границей: d c b a | a b c d | d c b a.
func reflectIndex(i, n int) int {
	if n <= 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
