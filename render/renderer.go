package render

import (
	"github.com/iwtcode/vehicleDash/models"
)

// Группы документа статуса.
const (
	GroupSummary     = "summary"
	GroupDrivetrain  = "drivetrain"
	GroupEnvironment = "environment"
	GroupTrip        = "trip"
)

// AbsentPolicy определяет, что делать со слотом, если поле не удалось извлечь.
type AbsentPolicy int

const (
	// KeepPrevious оставляет прежнее содержимое слота.
	KeepPrevious AbsentPolicy = iota
	// ShowPlaceholder записывает models.Placeholder.
	ShowPlaceholder
)

// Field описывает одно отображаемое поле: откуда его брать и как форматировать.
type Field struct {
	Slot     models.SlotID
	Group    string
	Name     string
	OnAbsent AbsentPolicy
	extract  func(group Optional[map[string]any], name string) Optional[string]
}

// Resolve извлекает и форматирует значение поля из документа.
func (f Field) Resolve(doc any) Optional[string] {
	return f.extract(Group(doc, f.Group), f.Name)
}

func textField(slot models.SlotID, group, name string, policy AbsentPolicy) Field {
	return Field{
		Slot:     slot,
		Group:    group,
		Name:     name,
		OnAbsent: policy,
		extract: func(g Optional[map[string]any], name string) Optional[string] {
			v, ok := Text(g, name).Get()
			if !ok || v == "" {
				return Absent[string]()
			}
			return Present(v)
		},
	}
}

func numberField(slot models.SlotID, group, name string, policy AbsentPolicy, format func(float64) string) Field {
	return Field{
		Slot:     slot,
		Group:    group,
		Name:     name,
		OnAbsent: policy,
		extract: func(g Optional[map[string]any], name string) Optional[string] {
			v, ok := Number(g, name).Get()
			if !ok {
				return Absent[string]()
			}
			return Present(format(v))
		},
	}
}

func fixed(decimals int) func(float64) string {
	return func(v float64) string { return Fixed(v, decimals) }
}

var fields = []Field{
	textField(models.SlotTitle, GroupSummary, "title", KeepPrevious),
	numberField(models.SlotSpeed, GroupSummary, "speed", KeepPrevious, Rounded),
	numberField(models.SlotRPM, GroupDrivetrain, "rpm", KeepPrevious, Rounded),
	numberField(models.SlotBattery, GroupDrivetrain, "battery_voltage", ShowPlaceholder, fixed(1)),
	numberField(models.SlotCoolant, GroupDrivetrain, "coolant_temp", ShowPlaceholder, fixed(1)),
	numberField(models.SlotCabin, GroupEnvironment, "cabin_temp", ShowPlaceholder, fixed(1)),
	numberField(models.SlotOutside, GroupEnvironment, "outside_temp", ShowPlaceholder, fixed(1)),
	numberField(models.SlotHumidity, GroupEnvironment, "humidity", ShowPlaceholder, Rounded),
	numberField(models.SlotFuel, GroupTrip, "fuel_level", ShowPlaceholder, fixed(0)),
	numberField(models.SlotRange, GroupTrip, "range_km", ShowPlaceholder, Rounded),
	numberField(models.SlotEfficiency, GroupTrip, "efficiency", ShowPlaceholder, fixed(1)),
}

// Fields возвращает таблицу распознаваемых полей.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Render переносит значения документа в слоты. Никогда не завершается ошибкой:
// отсутствующее поле или поле неверного типа дает прочерк либо оставляет слот как есть.
func Render(payload any, slots *models.DisplaySlots) {
	for _, f := range fields {
		if text, ok := f.Resolve(payload).Get(); ok {
			slots.Set(f.Slot, text)
			continue
		}
		if f.OnAbsent == ShowPlaceholder {
			slots.Set(f.Slot, models.Placeholder)
		}
	}
}
