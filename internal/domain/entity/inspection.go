package entity

import "time"

// EdgeMethod способ, которым получена сила границ
type EdgeMethod string

const (
	EdgeMethodSobel     EdgeMethod = "sobel"      // свёртка Собеля на Go
	EdgeMethodOpenCV    EdgeMethod = "opencv"     // свёртка Собеля через OpenCV
	EdgeMethodFindEdges EdgeMethod = "find_edges" // приближение фильтром FIND_EDGES
	EdgeMethodNone      EdgeMethod = "none"       // оценить не удалось, сила границ 0
)

// Signals числовые признаки изображения, по которым выбирается метка
type Signals struct {
	DarkPct        float64    `json:"dark_pct"`
	MeanBrightness float64    `json:"mean_brightness"`
	BrightPct      *float64   `json:"bright_pct,omitempty"` // считается только в ветке проводки
	EdgeStrength   float64    `json:"edge_strength"`
	EdgeMethod     EdgeMethod `json:"edge_method"`
}

// ClassificationResult итог классификации одного фото.
type ClassificationResult struct {
	Label    Label   `json:"label"`
	Severity float64 `json:"score"`
	Signals  Signals `json:"signals"`
	Decoded  bool    `json:"decoded"` // false, если файл не удалось прочитать
}

// Unclassified результат для нечитаемого изображения: ok с нулевой серьёзностью.
func Unclassified() ClassificationResult {
	return ClassificationResult{
		Label:    LabelOK,
		Severity: 0,
		Signals:  Signals{EdgeMethod: EdgeMethodNone},
	}
}

// LabelSource откуда взята метка находки
type LabelSource string

const (
	SourceImage    LabelSource = "image"    // классификация по пикселям
	SourceFilename LabelSource = "filename" // ключевое слово в имени файла
	SourceNotes    LabelSource = "notes"    // ключевое слово в заметках
)

// InspectionRow строка набора данных осмотра.
type InspectionRow struct {
	PropertyID    int64
	PropertyName  string
	RoomID        int64
	RoomName      string
	ImageFilename string
	Notes         string
}

// Finding результат осмотра одного фото, привязанный к объекту и помещению
type Finding struct {
	PropertyID    int64       `json:"property_id"`
	PropertyName  string      `json:"property_name"`
	RoomID        int64       `json:"room_id"`
	RoomName      string      `json:"room_name"`
	ImageFilename string      `json:"image_filename"`
	Label         Label       `json:"label"`
	Score         float64     `json:"score"`
	Notes         string      `json:"notes"`
	Source        LabelSource `json:"source"`
	EvaluatedAt   time.Time   `json:"evaluated_at"`
}
