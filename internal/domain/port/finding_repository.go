package port

import (
	"context"

	"defect-inspector/internal/domain/entity"
)

// FindingRepository интерфейс хранилища результатов осмотра
type FindingRepository interface {
	// EnsureSchema создаёт таблицу находок, если её нет
	EnsureSchema(ctx context.Context) error

	// InsertFindings сохраняет находки одной транзакцией
	InsertFindings(ctx context.Context, findings []entity.Finding) error

	// ListByProperty возвращает находки объекта
	ListByProperty(ctx context.Context, propertyID int64) ([]entity.Finding, error)
}
