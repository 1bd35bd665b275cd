// Package rest HTTP API классификатора дефектов.
package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "defect-inspector/internal/application"
	"defect-inspector/internal/domain/entity"
)

// InspectionUsecase то, что HTTP-слою нужно от сервиса осмотра
type InspectionUsecase interface {
	ClassifyPhoto(photo []byte) entity.ClassificationResult
	PropertyReport(ctx context.Context, propertyID int64) (app.PropertyReport, error)
	Severities() entity.SeverityTable
}

// Handler обработчики API осмотра
type Handler struct {
	uc     InspectionUsecase
	logger *slog.Logger
}

func NewHandler(uc InspectionUsecase, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{uc: uc, logger: logger}
}

// Classify классифицирует загруженный снимок.
//
// POST /v1/classify, multipart/form-data, поле image.
// Нечитаемый снимок не ошибка: ответ ok с нулевым баллом и decoded=false.
func (h *Handler) Classify(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		h.logger.Warn("image field missing", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Error("open upload", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read image"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error("read upload", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read image"})
		return
	}

	res := h.uc.ClassifyPhoto(data)
	c.JSON(http.StatusOK, ClassifyResponse{
		Label:   res.Label,
		Score:   res.Severity,
		Decoded: res.Decoded,
		Signals: res.Signals,
	})
}

// PropertyReport сводка по сохранённым находкам объекта.
//
// GET /v1/properties/:id/report
func (h *Handler) PropertyReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "property id must be an integer"})
		return
	}

	report, err := h.uc.PropertyReport(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, report)
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no findings for property"})
	case errors.Is(err, app.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "findings storage is not configured"})
	default:
		h.logger.Error("property report", "error", err, "property_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build report"})
	}
}

// Labels таблица серьёзности меток.
//
// GET /v1/labels
func (h *Handler) Labels(c *gin.Context) {
	table := h.uc.Severities()
	out := make([]SeverityResponse, 0, len(entity.Labels()))
	for _, l := range entity.Labels() {
		out = append(out, SeverityResponse{Label: l, Severity: table.Severity(l), Major: l.IsMajor()})
	}
	c.JSON(http.StatusOK, out)
}
