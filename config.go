package dash

import (
	"os"
	"strconv"
	"time"

	"github.com/iwtcode/vehicleDash/models"
)

const (
	DefaultRefreshSeconds = 3
	DefaultEndpoint       = "http://localhost:8000/api/dashboard"

	UILog      = "log"
	UITerminal = "terminal"
)

// Config хранит модель конфигурации приложения. Читается один раз при старте.
type Config struct {
	Endpoint       string
	RefreshSeconds int
	Title          string
	UI             string
	MetricsAddr    string
	LogLevel       string
	LogsDir        string
	LogSavingDays  uint
}

// Period возвращает период опроса.
func (c *Config) Period() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	endpoint := os.Getenv("CAR_DASH_ENDPOINT")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	refresh := DefaultRefreshSeconds
	if v, ok := os.LookupEnv("CAR_DASH_REFRESH_SECONDS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			refresh = max(1, n)
		}
	}

	title := os.Getenv("CAR_DASH_TITLE")
	if title == "" {
		title = models.DefaultTitle
	}

	ui := os.Getenv("CAR_DASH_UI")
	if ui != UITerminal {
		ui = UILog
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var savingDays uint64 = 7
	if v := os.Getenv("LOGGER_SAVING_DAYS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			savingDays = n
		}
	}

	return &Config{
		Endpoint:       endpoint,
		RefreshSeconds: refresh,
		Title:          title,
		UI:             ui,
		MetricsAddr:    os.Getenv("CAR_DASH_METRICS_ADDR"),
		LogLevel:       logLevel,
		LogsDir:        os.Getenv("LOGGER_LOGS_DIR"),
		LogSavingDays:  uint(savingDays),
	}
}
