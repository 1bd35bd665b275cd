package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"defect-inspector/internal/domain/entity"
)

// ErrInvalid конфигурация не прошла проверку
var ErrInvalid = errors.New("invalid config")

type Config struct {
	TelegramToken string `yaml:"-"`

	HTTP struct {
		Addr string `yaml:"addr"` // ":8080"
	} `yaml:"http"`

	Database struct {
		Driver string `yaml:"driver"` // "sqlite" | "postgres"
		DSN    string `yaml:"dsn"`    // "./inspector.db"
	} `yaml:"database"`

	Vision struct {
		EdgeBackend string             `yaml:"edge_backend"` // "sobel" | "opencv" | "find_edges"
		Workers     int                `yaml:"workers"`      // 0 = по числу CPU
		ImagesDir   string             `yaml:"images_dir"`   // "./data/images"
		Thresholds  entity.Thresholds  `yaml:"thresholds"`
		Severities  map[string]float64 `yaml:"severities"` // переопределение весов меток
	} `yaml:"vision"`

	Logging struct {
		Format string `yaml:"format"` // "text" | "json"
		Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	} `yaml:"logging"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	var c Config
	c.HTTP.Addr = ":8080"
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./inspector.db"
	c.Vision.EdgeBackend = "sobel"
	c.Vision.ImagesDir = "./data/images"
	c.Vision.Thresholds = entity.DefaultThresholds()
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

// Load читает .env, YAML из INSPECTOR_CONFIG и переменные окружения
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	return LoadFile(os.Getenv("INSPECTOR_CONFIG"))
}

// LoadFile собирает конфигурацию: значения по умолчанию, затем YAML, затем окружение
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("INSPECTOR_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("INSPECTOR_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("INSPECTOR_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("INSPECTOR_EDGE_BACKEND"); v != "" {
		c.Vision.EdgeBackend = v
	}
	if v := os.Getenv("INSPECTOR_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: INSPECTOR_WORKERS=%q", ErrInvalid, v)
		}
		c.Vision.Workers = n
	}
	if v := os.Getenv("INSPECTOR_IMAGES_DIR"); v != "" {
		c.Vision.ImagesDir = v
	}
	if v := os.Getenv("INSPECTOR_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("INSPECTOR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: database driver %q", ErrInvalid, c.Database.Driver)
	}

	switch strings.ToLower(c.Vision.EdgeBackend) {
	case "", "sobel", "opencv", "find_edges":
	default:
		return fmt.Errorf("%w: edge backend %q", ErrInvalid, c.Vision.EdgeBackend)
	}

	if c.Vision.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}

	t := c.Vision.Thresholds
	for name, v := range map[string]float64{
		"dark_level":   t.DarkLevel,
		"bright_level": t.BrightLevel,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1]", ErrInvalid, name)
		}
	}
	if t.CrackMinEdge > t.WiringMinEdge {
		return fmt.Errorf("%w: crack_min_edge above wiring_min_edge", ErrInvalid)
	}

	if _, err := c.SeverityTable(); err != nil {
		return err
	}
	return nil
}

// SeverityTable стандартные веса с переопределениями из конфигурации
func (c *Config) SeverityTable() (entity.SeverityTable, error) {
	if len(c.Vision.Severities) == 0 {
		return entity.DefaultSeverityTable(), nil
	}

	def := entity.DefaultSeverityTable()
	values := make(map[entity.Label]float64, len(entity.Labels()))
	for _, l := range entity.Labels() {
		values[l] = def.Severity(l)
	}
	for name, v := range c.Vision.Severities {
		l, err := entity.ParseLabel(name)
		if err != nil {
			return entity.SeverityTable{}, fmt.Errorf("%w: severity for %q: %w", ErrInvalid, name, err)
		}
		if v < 0 {
			return entity.SeverityTable{}, fmt.Errorf("%w: negative severity for %q", ErrInvalid, name)
		}
		values[l] = v
	}
	return entity.NewSeverityTable(values), nil
}
