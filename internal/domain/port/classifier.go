package port

import "defect-inspector/internal/domain/entity"

// ImageClassifier интерфейс классификатора фото осмотра
type ImageClassifier interface {
	// ClassifyFile классифицирует изображение по пути; ошибки чтения дают ok с нулевой серьёзностью
	ClassifyFile(path string) entity.ClassificationResult

	// ClassifyBytes классифицирует изображение из памяти
	ClassifyBytes(data []byte) entity.ClassificationResult
}
