package entity

import (
	"errors"
	"strings"
)

// Label метка дефекта на фото осмотра
type Label string

const (
	LabelCrack         Label = "crack"          // Трещина
	LabelLeak          Label = "leak"           // Протечка
	LabelDamp          Label = "damp"           // Сырость
	LabelMold          Label = "mold"           // Плесень
	LabelExposedWiring Label = "exposed_wiring" // Открытая проводка
	LabelOK            Label = "ok"             // Дефектов нет
)

// DefaultWeight вес метки, отсутствующей в таблице серьёзности
const DefaultWeight = 0.5

// ErrUnknownLabel метка не входит в перечисление
var ErrUnknownLabel = errors.New("unknown label")

var allLabels = []Label{
	LabelCrack,
	LabelLeak,
	LabelDamp,
	LabelMold,
	LabelExposedWiring,
	LabelOK,
}

// Labels возвращает все метки в каноническом порядке.
func Labels() []Label {
	out := make([]Label, len(allLabels))
	copy(out, allLabels)
	return out
}

// Valid сообщает, входит ли метка в перечисление
func (l Label) Valid() bool {
	for _, known := range allLabels {
		if l == known {
			return true
		}
	}
	return false
}

// IsMajor сообщает, относится ли метка к серьёзным проблемам помещения
func (l Label) IsMajor() bool {
	switch l {
	case LabelLeak, LabelDamp, LabelExposedWiring, LabelMold:
		return true
	}
	return false
}

// ParseLabel разбирает строку в метку. "wiring" считается синонимом exposed_wiring.
func ParseLabel(s string) (Label, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "wiring" {
		return LabelExposedWiring, nil
	}
	l := Label(s)
	if !l.Valid() {
		return "", ErrUnknownLabel
	}
	return l, nil
}

// SeverityTable неизменяемая таблица серьёзности по меткам
type SeverityTable struct {
	values map[Label]float64
}

// DefaultSeverityTable возвращает стандартные веса серьёзности.
func DefaultSeverityTable() SeverityTable {
	return NewSeverityTable(map[Label]float64{
		LabelCrack:         0.6,
		LabelLeak:          1.0,
		LabelDamp:          0.9,
		LabelMold:          1.0,
		LabelExposedWiring: 1.2,
		LabelOK:            0.0,
	})
}

// NewSeverityTable копирует переданные веса, исходная карта дальше не используется.
func NewSeverityTable(values map[Label]float64) SeverityTable {
	m := make(map[Label]float64, len(values))
	for k, v := range values {
		m[k] = v
	}
	return SeverityTable{values: m}
}

// Lookup возвращает серьёзность метки и признак её наличия в таблице
func (t SeverityTable) Lookup(l Label) (float64, bool) {
	v, ok := t.values[l]
	return v, ok
}

// Severity возвращает серьёзность метки, 0 для неизвестных
func (t SeverityTable) Severity(l Label) float64 {
	return t.values[l]
}

// Weight возвращает вес метки для агрегации, DefaultWeight для неизвестных
func (t SeverityTable) Weight(l Label) float64 {
	if v, ok := t.values[l]; ok {
		return v
	}
	return DefaultWeight
}
