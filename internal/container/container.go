package container

import (
	"fmt"
	"log/slog"

	"defect-inspector/config"
	app "defect-inspector/internal/application"
	"defect-inspector/internal/domain/port"
	"defect-inspector/internal/infrastructure/vision"
)

type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService
	Pipeline          *vision.Pipeline
}

// New собирает сервисы приложения. findings может быть nil, если хранилище не нужно.
func New(cfg *config.Config, userRepo port.UserRepository, findings port.FindingRepository, logger *slog.Logger) (*Container, error) {
	severities, err := cfg.SeverityTable()
	if err != nil {
		return nil, err
	}

	edges, err := vision.NewEdgeChainForBackend(cfg.Vision.EdgeBackend)
	if err != nil {
		return nil, fmt.Errorf("edge backend: %w", err)
	}

	classifier := vision.NewClassifier(cfg.Vision.Thresholds, severities)
	pipeline := vision.NewPipeline(classifier, edges, logger)

	userService := app.NewUserService(userRepo)
	inspectionService := app.NewInspectionService(userService, pipeline, findings, severities, cfg.Vision.Workers, logger)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
		Pipeline:          pipeline,
	}, nil
}
