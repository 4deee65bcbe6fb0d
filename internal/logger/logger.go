package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rajyadav1814/repoguard/internal/common"
)

// New creates a zerolog logger from the given configuration. Console and
// file outputs can be enabled independently; file output rotates via
// lumberjack.
func New(cfg Config) (zerolog.Logger, error) {
	writers, err := createWriters(cfg)
	if err != nil {
		return zerolog.Logger{}, err
	}
	if len(writers) == 0 {
		return zerolog.Logger{}, common.NewError("no log output writers configured")
	}

	multi := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multi).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	return logger, nil
}

func createWriters(cfg Config) ([]io.Writer, error) {
	var writers []io.Writer

	if cfg.EnableConsole {
		writers = append(writers, consoleWriter(cfg.Format, os.Stderr))
	}

	if cfg.EnableFile {
		if cfg.FilePath == "" {
			return nil, common.NewValidationError("file_path", cfg.FilePath, "file path required when file logging enabled")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, common.WrapError(err, "failed to create log directory")
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
		if strings.EqualFold(cfg.Format, "console") {
			writers = append(writers, zerolog.ConsoleWriter{Out: fileWriter, NoColor: true, TimeFormat: time.RFC3339})
		} else {
			writers = append(writers, fileWriter)
		}
	}

	return writers, nil
}

func consoleWriter(format string, out io.Writer) io.Writer {
	if strings.EqualFold(format, "json") {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
