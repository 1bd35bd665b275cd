package fixtures

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/lucasb-eyer/go-colorful"

	"defect-inspector/internal/domain/entity"
)

// Палитра синтетических снимков
var (
	wallLight  = mustHex("#ebebeb")
	wallWhite  = mustHex("#f5f5f5")
	wallGray   = mustHex("#aaaaaa")
	wallPale   = mustHex("#c8c8c8")
	wallDim    = mustHex("#6e6e6e")
	concrete   = mustHex("#808080")
	stainDamp  = mustHex("#5a5046")
	stainLeak  = mustHex("#322d28")
	crackInk   = mustHex("#0a0a0a")
	sporeSpot  = mustHex("#5c5c5c")
	wireSheath = mustHex("#fffaeb")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("fixtures: bad palette color %q: %v", s, err))
	}
	return c
}

// Generator рисует синтетические снимки под каждую метку.
type Generator struct {
	Width  int
	Height int
}

// NewGenerator создаёт генератор с размером кадра 400x300.
func NewGenerator() *Generator {
	return &Generator{Width: 400, Height: 300}
}

// Image рисует снимок для метки. Неизвестная метка даёт снимок без дефектов.
func (g *Generator) Image(label entity.Label) image.Image {
	switch label {
	case entity.LabelLeak:
		return g.leak()
	case entity.LabelDamp:
		return g.damp()
	case entity.LabelCrack:
		return g.crack()
	case entity.LabelExposedWiring:
		return g.exposedWiring()
	case entity.LabelMold:
		return g.mold()
	default:
		return g.ok()
	}
}

// Write сохраняет снимок метки в PNG
func (g *Generator) Write(label entity.Label, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}
	if err := imgio.Save(path, g.Image(label), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save fixture %s: %w", path, err)
	}
	return nil
}

// WriteAll сохраняет по одному снимку на каждую метку в dir, имя файла = метка.
func (g *Generator) WriteAll(dir string) (map[entity.Label]string, error) {
	out := make(map[entity.Label]string, len(entity.Labels()))
	for _, l := range entity.Labels() {
		path := filepath.Join(dir, string(l)+".png")
		if err := g.Write(l, path); err != nil {
			return nil, err
		}
		out[l] = path
	}
	return out, nil
}

// WriteForRows рисует снимок для каждой строки набора данных с именем файла.
// Метка выбирается по имени файла, заметки имеют приоритет.
func (g *Generator) WriteForRows(rows []entity.InspectionRow, dir string) (map[string]entity.Label, error) {
	written := make(map[string]entity.Label)
	for _, r := range rows {
		if r.ImageFilename == "" {
			continue
		}
		label := LabelForRow(r.ImageFilename, r.Notes)
		if err := g.Write(label, filepath.Join(dir, r.ImageFilename)); err != nil {
			return written, err
		}
		written[r.ImageFilename] = label
	}
	return written, nil
}

var rowKeywords = []struct {
	word  string
	label entity.Label
}{
	{"ok", entity.LabelOK},
	{"exposed_wiring", entity.LabelExposedWiring},
	{"wiring", entity.LabelExposedWiring},
	{"leak", entity.LabelLeak},
	{"damp", entity.LabelDamp},
	{"crack", entity.LabelCrack},
	{"mold", entity.LabelMold},
}

// LabelForRow выбирает, какой дефект рисовать для строки набора данных.
func LabelForRow(filename, notes string) entity.Label {
	chosen := entity.LabelOK
	name := strings.ToLower(filename)
	for _, k := range rowKeywords {
		if strings.Contains(name, k.word) {
			chosen = k.label
			break
		}
	}
	notes = strings.ToLower(notes)
	for _, k := range rowKeywords {
		if strings.Contains(notes, k.word) {
			chosen = k.label
			break
		}
	}
	return chosen
}

func (g *Generator) canvas(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// ok однотонная светлая стена
func (g *Generator) ok() image.Image {
	return g.canvas(wallLight)
}

// leak большое тёмное пятно с подтёком, больше половины кадра
func (g *Generator) leak() image.Image {
	img := g.canvas(wallPale)
	cx, cy := g.Width/2, g.Height/2
	fillEllipse(img, cx, cy, g.Width*45/100, g.Height*43/100, stainLeak)
	fillRect(img, image.Rect(cx-20, g.Height*9/10, cx+20, g.Height), stainLeak)
	return img
}

// damp умеренное пятно сырости на приглушённой стене
func (g *Generator) damp() image.Image {
	img := g.canvas(wallGray)
	fillEllipse(img, g.Width/2, g.Height/2, g.Width*9/40, g.Height/5, stainDamp)
	return img
}

// crack три тонкие ломаные линии
func (g *Generator) crack() image.Image {
	img := g.canvas(wallWhite)
	for _, y0 := range []int{g.Height / 6, g.Height * 13 / 30, g.Height * 7 / 10} {
		x, y := g.Width/40, y0
		for i := 0; i < 12; i++ {
			x2 := x + g.Width*3/40
			y2 := y + (i%2)*6
			drawLine(img, x, y, x2, y2, 2, crackInk)
			x, y = x2, y2
		}
	}
	return img
}

// exposedWiring пучок светлых проводов на бетоне
func (g *Generator) exposedWiring() image.Image {
	img := g.canvas(concrete)
	for i := 0; i < 16; i++ {
		y := g.Height*2/15 + i*14
		if y+1 >= g.Height {
			break
		}
		drawLine(img, 0, y, g.Width-1, y, 2, wireSheath)
	}
	return img
}

// mold сетка мелких пятен спор с детерминированным смещением
func (g *Generator) mold() image.Image {
	img := g.canvas(wallDim)
	const cols, rows, radius = 10, 7, 6
	stepX, stepY := g.Width/cols, g.Height/rows
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			jx := ((r*7+c*3)%5 - 2) * 3
			jy := ((r*3+c*5)%5 - 2) * 3
			fillDisc(img, c*stepX+stepX/2+jx, r*stepY+stepY/2+jy, radius, sporeSpot)
		}
	}
	return img
}
