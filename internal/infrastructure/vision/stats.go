package vision

import "gonum.org/v1/gonum/stat"

// DarkPct доля отсчётов строго ниже threshold
func DarkPct(g *Grid, threshold float64) float64 {
	if g.Empty() {
		return 0
	}
	n := 0
	for _, v := range g.Pix {
		if v < threshold {
			n++
		}
	}
	return float64(n) / float64(len(g.Pix))
}

// BrightPct доля отсчётов строго выше threshold
func BrightPct(g *Grid, threshold float64) float64 {
	if g.Empty() {
		return 0
	}
	n := 0
	for _, v := range g.Pix {
		if v > threshold {
			n++
		}
	}
	return float64(n) / float64(len(g.Pix))
}

// MeanBrightness средняя яркость; для пустой сетки 0
func MeanBrightness(g *Grid) float64 {
	if g.Empty() {
		return 0
	}
	return stat.Mean(g.Pix, nil)
}
