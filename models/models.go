package models

import "sync"

// Placeholder выводится в слот, когда числовое поле отсутствует или имеет неверный тип.
const Placeholder = "--"

// DefaultTitle - заголовок панели до первого успешного опроса.
const DefaultTitle = "Pi Dash"

// SlotID - стабильный идентификатор поля на экране.
type SlotID string

const (
	SlotTitle      SlotID = "title"
	SlotSpeed      SlotID = "speed"
	SlotRPM        SlotID = "rpm"
	SlotBattery    SlotID = "battery"
	SlotCoolant    SlotID = "coolant"
	SlotCabin      SlotID = "cabin"
	SlotOutside    SlotID = "outside"
	SlotHumidity   SlotID = "humidity"
	SlotFuel       SlotID = "fuel"
	SlotRange      SlotID = "range"
	SlotEfficiency SlotID = "efficiency"
)

var allSlots = []SlotID{
	SlotTitle,
	SlotSpeed,
	SlotRPM,
	SlotBattery,
	SlotCoolant,
	SlotCabin,
	SlotOutside,
	SlotHumidity,
	SlotFuel,
	SlotRange,
	SlotEfficiency,
}

// AllSlots возвращает все слоты в порядке отображения.
func AllSlots() []SlotID {
	out := make([]SlotID, len(allSlots))
	copy(out, allSlots)
	return out
}

// ElementName возвращает имя элемента разметки, к которому привязан слот.
func (id SlotID) ElementName() string {
	if id == SlotTitle {
		return "dashboard-title"
	}
	return string(id) + "-value"
}

// Label возвращает подпись слота для экрана.
func (id SlotID) Label() string {
	switch id {
	case SlotTitle:
		return "Title"
	case SlotSpeed:
		return "Speed"
	case SlotRPM:
		return "RPM"
	case SlotBattery:
		return "Battery (V)"
	case SlotCoolant:
		return "Coolant (°C)"
	case SlotCabin:
		return "Cabin (°C)"
	case SlotOutside:
		return "Outside (°C)"
	case SlotHumidity:
		return "Humidity (%)"
	case SlotFuel:
		return "Fuel (%)"
	case SlotRange:
		return "Range (km)"
	case SlotEfficiency:
		return "Efficiency (L/100km)"
	default:
		return string(id)
	}
}

// SlotObserver получает уведомление после каждой записи в слот.
type SlotObserver interface {
	SlotChanged(id SlotID, text string)
}

// DisplaySlots содержит текущее текстовое содержимое фиксированного набора слотов.
// Набор создается один раз при старте и не меняется; запись идет по принципу
// "последняя запись побеждает".
type DisplaySlots struct {
	// notifyMu держится на время записи и уведомления, чтобы наблюдатели
	// видели записи в том же порядке, в котором они попали в слоты.
	notifyMu  sync.Mutex
	mu        sync.RWMutex
	content   map[SlotID]string
	observers []SlotObserver
}

// DefaultContent возвращает исходную разметку: заголовок и прочерки в остальных слотах.
func DefaultContent(title string) map[SlotID]string {
	if title == "" {
		title = DefaultTitle
	}
	content := make(map[SlotID]string, len(allSlots))
	for _, id := range allSlots {
		content[id] = Placeholder
	}
	content[SlotTitle] = title
	return content
}

// NewDisplaySlots создает слоты для всех известных идентификаторов.
// Значения из defaults для неизвестных идентификаторов игнорируются.
func NewDisplaySlots(defaults map[SlotID]string) *DisplaySlots {
	s := &DisplaySlots{content: make(map[SlotID]string, len(allSlots))}
	for _, id := range allSlots {
		s.content[id] = defaults[id]
	}
	return s
}

// Attach подписывает наблюдателя и сразу передает ему текущее содержимое всех слотов.
func (s *DisplaySlots) Attach(o SlotObserver) {
	s.subscribe(o, true)
}

// Subscribe подписывает наблюдателя только на последующие записи.
func (s *DisplaySlots) Subscribe(o SlotObserver) {
	s.subscribe(o, false)
}

func (s *DisplaySlots) subscribe(o SlotObserver, replay bool) {
	if o == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.observers = append(s.observers, o)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !replay {
		return
	}
	for _, id := range allSlots {
		o.SlotChanged(id, snapshot[id])
	}
}

// Get возвращает содержимое слота.
func (s *DisplaySlots) Get(id SlotID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.content[id]
	return text, ok
}

// Set записывает текст в слот и уведомляет наблюдателей. Запись в неизвестный
// слот игнорируется. Наблюдатели не должны вызывать Set.
func (s *DisplaySlots) Set(id SlotID, text string) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if _, ok := s.content[id]; !ok {
		s.mu.Unlock()
		return
	}
	s.content[id] = text
	observers := s.observers
	s.mu.Unlock()

	for _, o := range observers {
		o.SlotChanged(id, text)
	}
}

// Snapshot возвращает копию содержимого всех слотов.
func (s *DisplaySlots) Snapshot() map[SlotID]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *DisplaySlots) snapshotLocked() map[SlotID]string {
	out := make(map[SlotID]string, len(s.content))
	for id, text := range s.content {
		out[id] = text
	}
	return out
}
