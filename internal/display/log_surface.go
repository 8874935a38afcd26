package display

import (
	"github.com/iwtcode/vehicleDash/internal/middleware/logging"
	"github.com/iwtcode/vehicleDash/models"
)

// LogSurface пишет каждое изменение слота в лог. Используется, когда терминал недоступен.
type LogSurface struct {
	logger *logging.Logger
}

func NewLogSurface(logger *logging.Logger) *LogSurface {
	return &LogSurface{logger: logger.WithPrefix("DISPLAY")}
}

func (s *LogSurface) SlotChanged(id models.SlotID, text string) {
	s.logger.Info("Slot updated", "slot", id.ElementName(), "text", text)
}
