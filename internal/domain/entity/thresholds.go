package entity

// Thresholds пороги эвристических правил классификатора
type Thresholds struct {
	DarkLevel         float64 `yaml:"dark_level"`          // яркость, ниже которой пиксель тёмный
	DampDarkPct       float64 `yaml:"damp_dark_pct"`       // доля тёмных пикселей для сырости
	DampMaxBrightness float64 `yaml:"damp_max_brightness"` // средняя яркость, ниже которой возможна сырость
	LeakDarkPct       float64 `yaml:"leak_dark_pct"`       // доля тёмных пикселей для протечки
	LeakMaxBrightness float64 `yaml:"leak_max_brightness"` // средняя яркость, ниже которой протечка
	CrackMinEdge      float64 `yaml:"crack_min_edge"`      // нижняя граница силы границ для трещины
	WiringMinEdge     float64 `yaml:"wiring_min_edge"`     // сила границ, с которой проверяется проводка
	BrightLevel       float64 `yaml:"bright_level"`        // яркость, выше которой пиксель светлый
	WiringBrightPct   float64 `yaml:"wiring_bright_pct"`   // доля светлых пикселей для проводки
	MoldDarkPct       float64 `yaml:"mold_dark_pct"`       // доля тёмных пикселей для плесени
	MoldMaxEdge       float64 `yaml:"mold_max_edge"`       // сила границ, ниже которой возможна плесень
}

// DefaultThresholds возвращает стандартные пороги.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DarkLevel:         0.4,
		DampDarkPct:       0.08,
		DampMaxBrightness: 0.7,
		LeakDarkPct:       0.2,
		LeakMaxBrightness: 0.5,
		CrackMinEdge:      0.07,
		WiringMinEdge:     0.25,
		BrightLevel:       0.85,
		WiringBrightPct:   0.001,
		MoldDarkPct:       0.05,
		MoldMaxEdge:       0.03,
	}
}
