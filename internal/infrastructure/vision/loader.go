package vision

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP
	_ "golang.org/x/image/tiff" // TIFF
	_ "golang.org/x/image/webp" // WebP
)

// Loader читает изображения и строит полутоновую сетку
type Loader struct{}

// LoadFile декодирует файл. Ошибка возвращается значением: решение о деградации
// принимает конвейер.
func (Loader) LoadFile(path string) (image.Image, *Grid, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return img, GridFromImage(img), nil
}

// LoadBytes декодирует изображение из памяти
func (Loader) LoadBytes(data []byte) (image.Image, *Grid, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("decode image: %w", image.ErrFormat)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}
	return img, GridFromImage(img), nil
}
