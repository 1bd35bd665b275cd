package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"defect-inspector/internal/domain/entity"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_TOKEN", "INSPECTOR_HTTP_ADDR", "INSPECTOR_DB_DRIVER", "INSPECTOR_DB_DSN",
		"INSPECTOR_EDGE_BACKEND", "INSPECTOR_WORKERS", "INSPECTOR_IMAGES_DIR",
		"INSPECTOR_LOG_FORMAT", "INSPECTOR_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inspector.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "sobel", cfg.Vision.EdgeBackend)
	require.Equal(t, entity.DefaultThresholds(), cfg.Vision.Thresholds)

	table, err := cfg.SeverityTable()
	require.NoError(t, err)
	require.Equal(t, 1.2, table.Severity(entity.LabelExposedWiring))
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
database:
  driver: postgres
  dsn: postgres://inspector@localhost/inspections
vision:
  edge_backend: find_edges
  workers: 3
  thresholds:
    crack_min_edge: 0.05
  severities:
    crack: 0.8
    wiring: 2.0
logging:
  level: debug
`)
	t.Setenv("INSPECTOR_WORKERS", "6")
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "find_edges", cfg.Vision.EdgeBackend)
	require.Equal(t, 6, cfg.Vision.Workers)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, "debug", cfg.Logging.Level)

	require.Equal(t, 0.05, cfg.Vision.Thresholds.CrackMinEdge)
	require.Equal(t, 0.25, cfg.Vision.Thresholds.WiringMinEdge)

	table, err := cfg.SeverityTable()
	require.NoError(t, err)
	require.Equal(t, 0.8, table.Severity(entity.LabelCrack))
	require.Equal(t, 2.0, table.Severity(entity.LabelExposedWiring))
	require.Equal(t, 1.0, table.Severity(entity.LabelLeak))
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "driver", yaml: "database:\n  driver: mysql\n"},
		{name: "backend", yaml: "vision:\n  edge_backend: canny\n"},
		{name: "workers env", env: map[string]string{"INSPECTOR_WORKERS": "many"}},
		{name: "negative workers", yaml: "vision:\n  workers: -1\n"},
		{name: "dark level", yaml: "vision:\n  thresholds:\n    dark_level: 1.5\n"},
		{name: "edge order", yaml: "vision:\n  thresholds:\n    crack_min_edge: 0.5\n"},
		{name: "unknown label", yaml: "vision:\n  severities:\n    rust: 1.0\n"},
		{name: "negative severity", yaml: "vision:\n  severities:\n    mold: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeYAML(t, tt.yaml)
			}
			_, err := LoadFile(path)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("json", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "label", "leak")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.True(t, strings.Contains(out, `"msg":"shown"`))
	require.True(t, strings.Contains(out, `"label":"leak"`))
}
