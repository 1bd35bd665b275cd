package vision

import "defect-inspector/internal/domain/entity"

// Classifier применяет упорядоченные эвристические правила к признакам изображения.
// Состояния не хранит, безопасен для параллельного использования.
type Classifier struct {
	thresholds entity.Thresholds
	severities entity.SeverityTable
}

// NewClassifier создаёт классификатор с заданными порогами и таблицей серьёзности.
func NewClassifier(thresholds entity.Thresholds, severities entity.SeverityTable) *Classifier {
	return &Classifier{
		thresholds: thresholds,
		severities: severities,
	}
}

// Thresholds пороги классификатора
func (c *Classifier) Thresholds() entity.Thresholds {
	return c.thresholds
}

// Severities таблица серьёзности классификатора
func (c *Classifier) Severities() entity.SeverityTable {
	return c.severities
}

// Label выбирает метку: срабатывает первое подходящее правило.
// brightPct вызывается только в ветке проводки.
func (c *Classifier) Label(sig entity.Signals, brightPct func() float64) entity.Label {
	t := c.thresholds
	dark, mean, edge := sig.DarkPct, sig.MeanBrightness, sig.EdgeStrength

	if dark > t.DampDarkPct && mean < t.DampMaxBrightness {
		if dark > t.LeakDarkPct || mean < t.LeakMaxBrightness {
			return entity.LabelLeak
		}
		return entity.LabelDamp
	}

	if edge > t.CrackMinEdge && edge < t.WiringMinEdge {
		return entity.LabelCrack
	}

	if edge >= t.WiringMinEdge {
		if brightPct != nil && brightPct() > t.WiringBrightPct {
			return entity.LabelExposedWiring
		}
		return entity.LabelCrack
	}

	if dark > t.MoldDarkPct && edge < t.MoldMaxEdge {
		return entity.LabelMold
	}

	return entity.LabelOK
}

// Result собирает результат; серьёзность берётся только из таблицы.
func (c *Classifier) Result(label entity.Label, sig entity.Signals) entity.ClassificationResult {
	return entity.ClassificationResult{
		Label:    label,
		Severity: c.severities.Severity(label),
		Signals:  sig,
		Decoded:  true,
	}
}
