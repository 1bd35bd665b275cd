package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"defect-inspector/config"
	telegram "defect-inspector/internal/api"
	"defect-inspector/internal/api/rest"
	app "defect-inspector/internal/application"
	"defect-inspector/internal/container"
	"defect-inspector/internal/domain/entity"
	"defect-inspector/internal/domain/port"
	"defect-inspector/internal/infrastructure/dataset"
	"defect-inspector/internal/infrastructure/fixtures"
	"defect-inspector/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "classify":
		err = classifyCmd(os.Args[2:])
	case "batch":
		err = batchCmd(os.Args[2:])
	case "fixtures":
		err = fixturesCmd(os.Args[2:])
	case "serve":
		err = serveCmd(os.Args[2:])
	case "bot":
		err = botCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `inspector – classify building defects on photos

Usage:
  inspector classify <image> [<image> ...]
  inspector batch    --csv <dataset.csv> [--images ./data/images] [--no-images] [--out results.csv] [--upload]
  inspector fixtures --out <dir> [--csv <dataset.csv>]
  inspector serve    [--addr :8080]
  inspector bot

Configuration: .env, YAML from INSPECTOR_CONFIG, INSPECTOR_* environment variables.
`)
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(cfg.Logging.Format, cfg.Logging.Level, os.Stderr)
	return cfg, logger, nil
}

func openFindings(cfg *config.Config) (*gorm.DB, *storage.GormFindingRepository, error) {
	db, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	return db, storage.NewGormFindingRepository(db), nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("close database", "error", err)
	}
}

func classifyCmd(args []string) error {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	backend := fs.String("edge-backend", "", "Edge backend: sobel, opencv, find_edges")
	verbose := fs.Bool("v", false, "Print signals")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("classify: at least one image path is required")
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Vision.EdgeBackend = *backend
	}

	c, err := container.New(cfg, storage.NewMemoryUserRepository(), nil, logger)
	if err != nil {
		return err
	}

	for _, path := range fs.Args() {
		res := c.InspectionService.ClassifyFile(path)
		fmt.Printf("%s: -> %s (score=%g)\n", path, res.Label, res.Severity)
		if *verbose {
			s := res.Signals
			fmt.Printf("  dark=%.4f mean=%.4f edge=%.4f method=%s decoded=%t\n",
				s.DarkPct, s.MeanBrightness, s.EdgeStrength, s.EdgeMethod, res.Decoded)
		}
	}
	return nil
}

func batchCmd(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	csvPath := fs.String("csv", "", "Path to dataset CSV")
	imagesDir := fs.String("images", "", "Directory with images (default from config)")
	noImages := fs.Bool("no-images", false, "Label rows from notes instead of images")
	outPath := fs.String("out", "", "Write results CSV to this path")
	upload := fs.Bool("upload", false, "Store findings in the database")
	workers := fs.Int("workers", 0, "Parallel workers (default from config)")
	_ = fs.Parse(args)

	if *csvPath == "" {
		return errors.New("batch: --csv is required")
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	// precedence: flags > config > defaults
	if *imagesDir == "" {
		*imagesDir = cfg.Vision.ImagesDir
	}
	if *workers > 0 {
		cfg.Vision.Workers = *workers
	}

	rows, err := dataset.Load(*csvPath)
	if err != nil {
		return err
	}

	var findingsRepo port.FindingRepository
	if *upload {
		db, repo, err := openFindings(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db, logger)
		findingsRepo = repo
	}

	c, err := container.New(cfg, storage.NewMemoryUserRepository(), findingsRepo, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	findings, err := c.InspectionService.ClassifyRows(ctx, rows, app.BatchOptions{
		ImagesDir: *imagesDir,
		UseImages: !*noImages,
	})
	if err != nil {
		return err
	}

	for _, f := range findings {
		if f.ImageFilename == "" {
			continue
		}
		fmt.Printf("%s: -> %s (score=%g, from %s)\n", f.ImageFilename, f.Label, f.Score, f.Source)
	}

	fmt.Println("\nSummary:")
	for _, lc := range app.CountLabels(findings) {
		fmt.Printf("  %s: %d\n", lc.Label, lc.Count)
	}

	fmt.Println("\nProperties:")
	for _, r := range app.BuildReports(findings, c.InspectionService.Severities()) {
		fmt.Printf("  %s (findings %d, avg %.2f, score %.2f): %s\n",
			r.PropertyName, r.TotalFindings, r.AvgScore, r.RiskScore, r.Summary)
	}

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create results: %w", err)
		}
		if err := dataset.WriteFindings(f, findings); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close results: %w", err)
		}
		logger.Info("results written", "path", *outPath, "rows", len(findings))
	}

	if *upload {
		if err := c.InspectionService.Upload(ctx, findings); err != nil {
			return err
		}
	}
	return nil
}

func fixturesCmd(args []string) error {
	fs := flag.NewFlagSet("fixtures", flag.ExitOnError)
	outDir := fs.String("out", "", "Output directory for images")
	csvPath := fs.String("csv", "", "Dataset CSV: draw one image per row")
	_ = fs.Parse(args)

	if *outDir == "" {
		return errors.New("fixtures: --out is required")
	}

	_, logger, err := setup()
	if err != nil {
		return err
	}
	gen := fixtures.NewGenerator()

	if *csvPath == "" {
		paths, err := gen.WriteAll(*outDir)
		if err != nil {
			return err
		}
		for _, l := range entity.Labels() {
			fmt.Println("Wrote", paths[l])
		}
		return nil
	}

	rows, err := dataset.Load(*csvPath)
	if err != nil {
		return err
	}
	written, err := gen.WriteForRows(rows, *outDir)
	if err != nil {
		return err
	}
	logger.Info("fixtures written", "dir", *outDir, "images", len(written))
	return nil
}

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "Listen address (default from config)")
	_ = fs.Parse(args)

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if *addr == "" {
		*addr = cfg.HTTP.Addr
	}

	db, repo, err := openFindings(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	c, err := container.New(cfg, storage.NewMemoryUserRepository(), repo, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           rest.NewRouter(rest.NewHandler(c.InspectionService, logger), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", *addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func botCmd(args []string) error {
	fs := flag.NewFlagSet("bot", flag.ExitOnError)
	_ = fs.Parse(args)

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository()

	// Собираем сервисы приложения
	appContainer, err := container.New(cfg, userRepo, nil, logger)
	if err != nil {
		return err
	}

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.UserService, appContainer.InspectionService, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bot is running")
	return bot.Run(ctx)
}
