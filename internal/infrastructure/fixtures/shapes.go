package fixtures

import (
	"image"
	"image/color"
	"image/draw"
)

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// fillEllipse закрашивает пиксели, центры которых лежат внутри эллипса.
func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	b := img.Bounds()
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			dx := (float64(x) + 0.5 - float64(cx)) / float64(rx)
			dy := (float64(y) + 0.5 - float64(cy)) / float64(ry)
			if dx*dx+dy*dy <= 1 {
				img.Set(x, y, c)
			}
		}
	}
}

// fillDisc закрашивает целочисленный круг x²+y² <= r².
func fillDisc(img *image.RGBA, cx, cy, r int, c color.Color) {
	b := img.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			p := image.Point{X: cx + dx, Y: cy + dy}
			if p.In(b) {
				img.Set(p.X, p.Y, c)
			}
		}
	}
}

// drawLine рисует отрезок толщиной width квадратной кистью.
func drawLine(img *image.RGBA, x0, y0, x1, y1, width int, c color.Color) {
	if width < 1 {
		width = 1
	}
	dx, dy := x1-x0, y1-y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	half := width / 2
	for i := 0; i <= steps; i++ {
		px, py := x0, y0
		if steps > 0 {
			px = x0 + roundDiv(dx*i, steps)
			py = y0 + roundDiv(dy*i, steps)
		}
		fillRect(img, image.Rect(px-half, py-half, px-half+width, py-half+width), c)
	}
}

func roundDiv(a, b int) int {
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
