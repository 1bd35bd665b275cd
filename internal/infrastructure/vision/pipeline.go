package vision

import (
	"image"
	"log/slog"

	"defect-inspector/internal/domain/entity"
	"defect-inspector/internal/domain/port"
)

// Pipeline загрузка, признаки, классификация. Всегда возвращает валидный результат.
type Pipeline struct {
	loader     Loader
	edges      *EdgeChain
	classifier *Classifier
	logger     *slog.Logger
}

// NewPipeline собирает конвейер. nil-значения заменяются стандартными.
func NewPipeline(classifier *Classifier, edges *EdgeChain, logger *slog.Logger) *Pipeline {
	if classifier == nil {
		classifier = NewClassifier(entity.DefaultThresholds(), entity.DefaultSeverityTable())
	}
	if edges == nil {
		edges = NewEdgeChain(SobelEstimator{}, FindEdgesEstimator{})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		classifier: classifier,
		edges:      edges,
		logger:     logger,
	}
}

// ClassifyFile классифицирует файл. Нечитаемый файл даёт (ok, 0.0).
func (p *Pipeline) ClassifyFile(path string) entity.ClassificationResult {
	img, grid, err := p.loader.LoadFile(path)
	if err != nil {
		p.logger.Debug("image not decoded, falling back to ok", "path", path, "error", err)
		return entity.Unclassified()
	}
	return p.classify(img, grid)
}

// ClassifyBytes классифицирует изображение из памяти.
func (p *Pipeline) ClassifyBytes(data []byte) entity.ClassificationResult {
	img, grid, err := p.loader.LoadBytes(data)
	if err != nil {
		p.logger.Debug("image not decoded, falling back to ok", "bytes", len(data), "error", err)
		return entity.Unclassified()
	}
	return p.classify(img, grid)
}

// ClassifyImage классифицирует уже декодированное изображение
func (p *Pipeline) ClassifyImage(img image.Image) entity.ClassificationResult {
	if img == nil {
		return entity.Unclassified()
	}
	return p.classify(img, GridFromImage(img))
}

func (p *Pipeline) classify(img image.Image, grid *Grid) entity.ClassificationResult {
	t := p.classifier.Thresholds()

	sig := entity.Signals{
		DarkPct:        DarkPct(grid, t.DarkLevel),
		MeanBrightness: MeanBrightness(grid),
	}
	sig.EdgeStrength, sig.EdgeMethod = p.edges.Estimate(img, grid)

	brightPct := func() float64 {
		if sig.BrightPct == nil {
			v := BrightPct(grid, t.BrightLevel)
			sig.BrightPct = &v
		}
		return *sig.BrightPct
	}

	label := p.classifier.Label(sig, brightPct)
	p.logger.Debug("image classified",
		"label", label,
		"dark_pct", sig.DarkPct,
		"mean_brightness", sig.MeanBrightness,
		"edge_strength", sig.EdgeStrength,
		"edge_method", sig.EdgeMethod,
	)
	return p.classifier.Result(label, sig)
}

// Проверка реализации интерфейса
var _ port.ImageClassifier = (*Pipeline)(nil)
