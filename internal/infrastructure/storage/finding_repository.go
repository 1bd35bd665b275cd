package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"defect-inspector/internal/domain/entity"
	"defect-inspector/internal/domain/port"
)

// findingModel строка таблицы inspection_findings
type findingModel struct {
	ID            uint   `gorm:"primaryKey"`
	PropertyID    int64  `gorm:"index"`
	PropertyName  string
	RoomID        int64
	RoomName      string
	ImageFilename string
	Label         string `gorm:"size:32"`
	Score         float64
	Notes         string
	EvaluatedAt   time.Time
}

func (findingModel) TableName() string { return "inspection_findings" }

func toModel(f entity.Finding) findingModel {
	return findingModel{
		PropertyID:    f.PropertyID,
		PropertyName:  f.PropertyName,
		RoomID:        f.RoomID,
		RoomName:      f.RoomName,
		ImageFilename: f.ImageFilename,
		Label:         string(f.Label),
		Score:         f.Score,
		Notes:         f.Notes,
		EvaluatedAt:   f.EvaluatedAt,
	}
}

func (m findingModel) toEntity() entity.Finding {
	return entity.Finding{
		PropertyID:    m.PropertyID,
		PropertyName:  m.PropertyName,
		RoomID:        m.RoomID,
		RoomName:      m.RoomName,
		ImageFilename: m.ImageFilename,
		Label:         entity.Label(m.Label),
		Score:         m.Score,
		Notes:         m.Notes,
		EvaluatedAt:   m.EvaluatedAt,
	}
}

// GormFindingRepository хранилище находок на gorm
type GormFindingRepository struct {
	db *gorm.DB
}

// NewGormFindingRepository создаёт хранилище поверх открытого соединения
func NewGormFindingRepository(db *gorm.DB) *GormFindingRepository {
	return &GormFindingRepository{db: db}
}

// EnsureSchema создаёт таблицу находок, если её нет
func (r *GormFindingRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&findingModel{}); err != nil {
		return fmt.Errorf("migrate findings: %w", err)
	}
	return nil
}

// InsertFindings сохраняет находки одной транзакцией
func (r *GormFindingRepository) InsertFindings(ctx context.Context, findings []entity.Finding) error {
	if len(findings) == 0 {
		return nil
	}
	rows := make([]findingModel, 0, len(findings))
	for _, f := range findings {
		m := toModel(f)
		if m.EvaluatedAt.IsZero() {
			m.EvaluatedAt = time.Now().UTC()
		}
		rows = append(rows, m)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return fmt.Errorf("insert findings: %w", err)
	}
	return nil
}

// ListByProperty возвращает находки объекта в порядке вставки
func (r *GormFindingRepository) ListByProperty(ctx context.Context, propertyID int64) ([]entity.Finding, error) {
	var rows []findingModel
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list findings: %w", err)
	}

	out := make([]entity.Finding, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Проверка реализации интерфейса
var _ port.FindingRepository = (*GormFindingRepository)(nil)
