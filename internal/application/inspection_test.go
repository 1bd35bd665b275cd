package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"defect-inspector/internal/domain/entity"
	"defect-inspector/internal/infrastructure/fixtures"
	"defect-inspector/internal/infrastructure/storage"
	"defect-inspector/internal/infrastructure/vision"
)

type stubClassifier struct {
	mu    sync.Mutex
	res   entity.ClassificationResult
	files []string
}

func (s *stubClassifier) ClassifyFile(path string) entity.ClassificationResult {
	s.mu.Lock()
	s.files = append(s.files, filepath.Base(path))
	s.mu.Unlock()
	return s.res
}

func (s *stubClassifier) ClassifyBytes([]byte) entity.ClassificationResult {
	return s.res
}

func leakResult() entity.ClassificationResult {
	return entity.ClassificationResult{Label: entity.LabelLeak, Severity: 1.0, Decoded: true}
}

func newService(t *testing.T, c *stubClassifier, withStorage bool) *InspectionService {
	t.Helper()
	users := NewUserService(storage.NewMemoryUserRepository())
	if !withStorage {
		return NewInspectionService(users, c, nil, entity.DefaultSeverityTable(), 2, nil)
	}

	db, err := storage.Open(storage.DriverSQLite, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewInspectionService(users, c, storage.NewGormFindingRepository(db), entity.DefaultSeverityTable(), 2, nil)
}

func TestInspectionService_ClassifyRowsSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kitchen.png"), []byte("x"), 0o644))

	c := &stubClassifier{res: leakResult()}
	svc := newService(t, c, false)
	rows := []entity.InspectionRow{
		{PropertyID: 1, RoomName: "Kitchen", ImageFilename: "kitchen.png"},
		{PropertyID: 1, RoomName: "Bath", ImageFilename: "water_stain.jpg"},
		{PropertyID: 1, RoomName: "Hall", Notes: "Small LEAK under sink"},
	}

	got, err := svc.ClassifyRows(context.Background(), rows, BatchOptions{ImagesDir: dir, UseImages: true})
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, entity.LabelLeak, got[0].Label)
	require.Equal(t, entity.SourceImage, got[0].Source)
	require.Equal(t, 1.0, got[0].Score)

	require.Equal(t, entity.LabelDamp, got[1].Label)
	require.Equal(t, entity.SourceFilename, got[1].Source)
	require.Equal(t, 0.9, got[1].Score)

	require.Equal(t, entity.LabelLeak, got[2].Label)
	require.Equal(t, entity.SourceNotes, got[2].Source)

	require.Equal(t, []string{"kitchen.png"}, c.files)
}

func TestInspectionService_ClassifyRowsNotesOnly(t *testing.T) {
	c := &stubClassifier{res: leakResult()}
	svc := newService(t, c, false)
	rows := []entity.InspectionRow{
		{ImageFilename: "crack.png", Notes: "exposed wiring near panel"},
		{ImageFilename: "leak.png"},
	}

	got, err := svc.ClassifyRows(context.Background(), rows, BatchOptions{UseImages: false})
	require.NoError(t, err)
	require.Equal(t, entity.LabelExposedWiring, got[0].Label)
	require.Equal(t, 1.2, got[0].Score)
	require.Equal(t, entity.LabelOK, got[1].Label)
	require.Zero(t, got[1].Score)
	require.Empty(t, c.files)
}

func TestInspectionService_ClassifyRowsKeepsOrder(t *testing.T) {
	svc := newService(t, &stubClassifier{res: leakResult()}, false)
	rows := make([]entity.InspectionRow, 50)
	for i := range rows {
		rows[i] = entity.InspectionRow{RoomID: int64(i), ImageFilename: fmt.Sprintf("img_%02d.png", i)}
	}

	got, err := svc.ClassifyRows(context.Background(), rows, BatchOptions{ImagesDir: t.TempDir(), UseImages: true})
	require.NoError(t, err)
	for i := range rows {
		require.Equal(t, rows[i].ImageFilename, got[i].ImageFilename)
		require.Equal(t, int64(i), got[i].RoomID)
	}
}

func TestInspectionService_ClassifyRowsCanceled(t *testing.T) {
	svc := newService(t, &stubClassifier{res: leakResult()}, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ClassifyRows(ctx, []entity.InspectionRow{{Notes: "ok"}}, BatchOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestInspectionService_UploadAndReport(t *testing.T) {
	svc := newService(t, &stubClassifier{res: leakResult()}, true)
	ctx := context.Background()

	rows := []entity.InspectionRow{
		{PropertyID: 5, PropertyName: "Birch", RoomName: "Kitchen", Notes: "leak"},
		{PropertyID: 5, PropertyName: "Birch", RoomName: "Bath", Notes: "fine"},
		{PropertyID: 6, PropertyName: "Elm", RoomName: "Attic", Notes: "mold"},
	}
	findings, err := svc.ClassifyRows(ctx, rows, BatchOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Upload(ctx, findings))

	r, err := svc.PropertyReport(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, "Birch", r.PropertyName)
	require.Equal(t, 2, r.TotalFindings)
	require.Equal(t, "Low risk: leak in 1 images, ok in 1 images; major issues in 1/2 rooms.", r.Summary)

	_, err = svc.PropertyReport(ctx, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInspectionService_StorageDisabled(t *testing.T) {
	svc := newService(t, &stubClassifier{}, false)

	require.ErrorIs(t, svc.Upload(context.Background(), nil), ErrStorageDisabled)
	_, err := svc.PropertyReport(context.Background(), 1)
	require.ErrorIs(t, err, ErrStorageDisabled)
}

func TestInspectionService_InspectPhotoSession(t *testing.T) {
	svc := newService(t, &stubClassifier{res: leakResult()}, false)
	ctx := context.Background()

	_, err := svc.SessionReport(ctx, 1, 10)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.users.BeginCheck(ctx, 1, 10, "Kitchen")
	require.NoError(t, err)

	user, res, err := svc.InspectPhoto(ctx, 1, 10, []byte("photo"))
	require.NoError(t, err)
	require.Equal(t, entity.LabelLeak, res.Label)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
	require.Len(t, user.Findings, 1)
	require.Equal(t, "Kitchen", user.Findings[0].RoomName)

	r, err := svc.SessionReport(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.RiskLow, r.Tier)
	require.Equal(t, "Low risk: leak in 1 images; major issues in 1/1 rooms.", r.Summary)

	_, _, err = svc.InspectPhoto(ctx, 1, 10, []byte("photo"))
	require.NoError(t, err)
	r, err = svc.SessionReport(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.RiskMedium, r.Tier)
}

func TestInspectionService_BatchWithPipeline(t *testing.T) {
	dir := t.TempDir()
	_, err := fixtures.NewGenerator().WriteAll(dir)
	require.NoError(t, err)

	users := NewUserService(storage.NewMemoryUserRepository())
	svc := NewInspectionService(users, vision.NewPipeline(nil, nil, nil), nil, entity.DefaultSeverityTable(), 3, nil)

	var rows []entity.InspectionRow
	for _, l := range entity.Labels() {
		rows = append(rows, entity.InspectionRow{PropertyID: 1, RoomName: string(l), ImageFilename: string(l) + ".png"})
	}

	got, err := svc.ClassifyRows(context.Background(), rows, BatchOptions{ImagesDir: dir, UseImages: true})
	require.NoError(t, err)
	for i, l := range entity.Labels() {
		require.Equal(t, l, got[i].Label)
		require.Equal(t, entity.SourceImage, got[i].Source)
	}
}

func TestInspectionService_InspectPhotoUndecodableNotRecorded(t *testing.T) {
	users := NewUserService(storage.NewMemoryUserRepository())
	svc := NewInspectionService(users, vision.NewPipeline(nil, nil, nil), nil, entity.DefaultSeverityTable(), 1, nil)
	ctx := context.Background()

	_, err := users.BeginCheck(ctx, 7, 70, "Garage")
	require.NoError(t, err)

	user, res, err := svc.InspectPhoto(ctx, 7, 70, []byte("not an image"))
	require.NoError(t, err)
	require.False(t, res.Decoded)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
	require.Empty(t, user.Findings)

	_, err = svc.SessionReport(ctx, 7, 70)
	require.ErrorIs(t, err, ErrNotFound)
}
