package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"defect-inspector/internal/domain/entity"
	"defect-inspector/internal/domain/port"
)

var (
	// ErrNotFound по объекту нет сохранённых находок
	ErrNotFound = errors.New("not found")
	// ErrStorageDisabled хранилище находок не настроено
	ErrStorageDisabled = errors.New("findings storage is not configured")
)

// BatchOptions откуда брать метку для строк набора данных
type BatchOptions struct {
	ImagesDir string // Каталог со снимками
	UseImages bool   // Классифицировать снимки, иначе смотреть в заметки
}

type InspectionService struct {
	users      *UserService
	classifier port.ImageClassifier
	findings   port.FindingRepository
	severities entity.SeverityTable
	workers    int
	logger     *slog.Logger
	now        func() time.Time
}

// NewInspectionService создаёт сервис осмотра. findings может быть nil, тогда выгрузка недоступна.
func NewInspectionService(
	users *UserService,
	classifier port.ImageClassifier,
	findings port.FindingRepository,
	severities entity.SeverityTable,
	workers int,
	logger *slog.Logger,
) *InspectionService {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InspectionService{
		users:      users,
		classifier: classifier,
		findings:   findings,
		severities: severities,
		workers:    workers,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Severities таблица серьёзности, по которой считаются баллы
func (s *InspectionService) Severities() entity.SeverityTable {
	return s.severities
}

// ClassifyFile классифицирует снимок с диска
func (s *InspectionService) ClassifyFile(path string) entity.ClassificationResult {
	return s.classifier.ClassifyFile(path)
}

// ClassifyPhoto классифицирует снимок из памяти
func (s *InspectionService) ClassifyPhoto(photo []byte) entity.ClassificationResult {
	return s.classifier.ClassifyBytes(photo)
}

// InspectPhoto классифицирует фото из чата и добавляет находку в текущий осмотр.
// Нечитаемое фото в осмотр не записывается.
func (s *InspectionService) InspectPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.User, entity.ClassificationResult, error) {
	user, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing)
	if err != nil {
		return nil, entity.ClassificationResult{}, err
	}

	res := s.classifier.ClassifyBytes(photo)
	s.logger.Info("photo classified",
		slog.Int64("user_id", userID),
		slog.String("room", user.Room),
		slog.String("label", string(res.Label)),
		slog.Float64("score", res.Severity),
		slog.Bool("decoded", res.Decoded),
	)

	if !res.Decoded {
		// Нечитаемое фото не попадает в осмотр.
		user, err = s.users.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
		if err != nil {
			return nil, res, err
		}
		return user, res, nil
	}

	user, err = s.users.RecordFinding(ctx, userID, chatID, entity.Finding{
		RoomName:      user.Room,
		ImageFilename: fmt.Sprintf("photo_%d.jpg", len(user.Findings)+1),
		Label:         res.Label,
		Score:         res.Severity,
		Source:        entity.SourceImage,
		EvaluatedAt:   s.now(),
	})
	if err != nil {
		return nil, res, err
	}
	return user, res, nil
}

// SessionReport сводка по фото текущего осмотра пользователя
func (s *InspectionService) SessionReport(ctx context.Context, userID, chatID int64) (PropertyReport, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return PropertyReport{}, err
	}
	if len(user.Findings) == 0 {
		return PropertyReport{}, ErrNotFound
	}

	r := BuildReport(user.Findings, s.severities)
	r.PropertyName = user.Room
	return r, nil
}

// ClassifyRows классифицирует строки набора данных параллельно, порядок результата совпадает с rows.
func (s *InspectionService) ClassifyRows(ctx context.Context, rows []entity.InspectionRow, opts BatchOptions) ([]entity.Finding, error) {
	out := make([]entity.Finding, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.classifyRow(row, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classify rows: %w", err)
	}

	s.logger.Info("batch classified", slog.Int("rows", len(rows)), slog.Int("workers", s.workers))
	return out, nil
}

func (s *InspectionService) classifyRow(row entity.InspectionRow, opts BatchOptions) entity.Finding {
	f := entity.Finding{
		PropertyID:    row.PropertyID,
		PropertyName:  row.PropertyName,
		RoomID:        row.RoomID,
		RoomName:      row.RoomName,
		ImageFilename: row.ImageFilename,
		Notes:         row.Notes,
		EvaluatedAt:   s.now(),
	}

	switch {
	case opts.UseImages && row.ImageFilename != "":
		path := filepath.Join(opts.ImagesDir, row.ImageFilename)
		if _, err := os.Stat(path); err == nil {
			res := s.classifier.ClassifyFile(path)
			f.Label, f.Score, f.Source = res.Label, res.Severity, entity.SourceImage
			return f
		}
		s.logger.Debug("image missing, label from filename", slog.String("path", path))
		f.Label, f.Source = entity.LabelFromFilename(row.ImageFilename), entity.SourceFilename
	default:
		f.Label, f.Source = entity.LabelFromNotes(row.Notes), entity.SourceNotes
	}

	f.Score = s.severities.Weight(f.Label)
	return f
}

// Upload сохраняет находки в хранилище, создавая таблицу при необходимости
func (s *InspectionService) Upload(ctx context.Context, findings []entity.Finding) error {
	if s.findings == nil {
		return ErrStorageDisabled
	}
	if err := s.findings.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := s.findings.InsertFindings(ctx, findings); err != nil {
		return err
	}
	s.logger.Info("findings uploaded", slog.Int("count", len(findings)))
	return nil
}

// PropertyReport сводка по сохранённым находкам объекта
func (s *InspectionService) PropertyReport(ctx context.Context, propertyID int64) (PropertyReport, error) {
	if s.findings == nil {
		return PropertyReport{}, ErrStorageDisabled
	}
	findings, err := s.findings.ListByProperty(ctx, propertyID)
	if err != nil {
		return PropertyReport{}, err
	}
	if len(findings) == 0 {
		return PropertyReport{}, fmt.Errorf("property %d: %w", propertyID, ErrNotFound)
	}
	return BuildReport(findings, s.severities), nil
}
