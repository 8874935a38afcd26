package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Level      string // debug, info, warn, error; off/none отключает вывод
	Console    bool   // Писать ли в stdout
	LogsDir    string // Директория для логов, пусто - без файла
	SavingDays uint   // Сколько дней хранить логи
}

type Logger struct {
	entry  *logrus.Entry
	file   *os.File
	prefix string
}

// NewBase создает logrus.Logger с настройками вывода и уровнем из конфигурации.
func NewBase(cfg *Config) (*logrus.Logger, *os.File) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     cfg.Console,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.Level == "off" || cfg.Level == "none" {
		logger.SetOutput(io.Discard)
		return logger, nil
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}

	var file *os.File
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err == nil {
			logFile := filepath.Join(cfg.LogsDir, time.Now().Format("2006-01-02")+".log")
			if f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
				file = f
				writers = append(writers, f)
			}
		}
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger, file
}

// NewLogger создает логгер с префиксом и подчищает старые файлы логов.
func NewLogger(cfg *Config, prefix string) *Logger {
	base, file := NewBase(cfg)
	l := Wrap(base, prefix)
	l.file = file

	if cfg.LogsDir != "" && cfg.SavingDays > 0 {
		if removed, err := CleanOldLogs(cfg.LogsDir, cfg.SavingDays, time.Now()); err != nil {
			l.Warn("Failed to clean old logs", "dir", cfg.LogsDir, "error", err)
		} else if removed > 0 {
			l.Debug("Old log files removed", "count", removed)
		}
	}

	return l
}

// Wrap оборачивает готовый logrus.Logger.
func Wrap(base *logrus.Logger, prefix string) *Logger {
	return &Logger{entry: logrus.NewEntry(base), prefix: formatPrefix("", prefix)}
}

// Discard возвращает логгер без вывода.
func Discard() *Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return Wrap(base, "")
}

func formatPrefix(parent, prefix string) string {
	if prefix == "" {
		return parent
	}
	if parent != "" {
		parent += " "
	}
	return parent + "[" + prefix + "]"
}

func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		entry:  l.entry,
		file:   l.file,
		prefix: formatPrefix(l.prefix, prefix),
	}
}

// Base возвращает исходный logrus.Logger.
func (l *Logger) Base() *logrus.Logger {
	return l.entry.Logger
}

// CleanOldLogs удаляет файлы логов старше savingDays дней и возвращает их количество.
func CleanOldLogs(dir string, savingDays uint, now time.Time) (int, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read logs directory: %w", err)
	}

	removed := 0
	cutoff := now.AddDate(0, 0, -int(savingDays))
	for _, file := range files {
		info, err := file.Info()
		if err != nil || file.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, file.Name())); err != nil {
			return removed, fmt.Errorf("delete old log file %s: %w", file.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func (l *Logger) log(level logrus.Level, msg string, fields ...interface{}) {
	if !l.entry.Logger.IsLevelEnabled(level) {
		return
	}

	data := make(logrus.Fields, len(fields)/2+1)
	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		var val interface{} = "?"
		if i+1 < len(fields) {
			val = fields[i+1]
		}
		data[key] = val
	}

	message := msg
	if l.prefix != "" {
		message = l.prefix + " " + msg
	}
	l.entry.WithFields(data).Log(level, strings.TrimSpace(message))
}

func (l *Logger) Debug(msg string, fields ...interface{}) { l.log(logrus.DebugLevel, msg, fields...) }
func (l *Logger) Info(msg string, fields ...interface{})  { l.log(logrus.InfoLevel, msg, fields...) }
func (l *Logger) Warn(msg string, fields ...interface{})  { l.log(logrus.WarnLevel, msg, fields...) }
func (l *Logger) Error(msg string, fields ...interface{}) { l.log(logrus.ErrorLevel, msg, fields...) }

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
