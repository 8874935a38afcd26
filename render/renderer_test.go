package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/vehicleDash/models"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func newSlots() *models.DisplaySlots {
	return models.NewDisplaySlots(models.DefaultContent("Pi Dash"))
}

func TestRenderPresentFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		slot    models.SlotID
		want    string
	}{
		{"title", `{"summary":{"title":"Weekend"}}`, models.SlotTitle, "Weekend"},
		{"speed", `{"summary":{"speed":101.6}}`, models.SlotSpeed, "102"},
		{"rpm", `{"drivetrain":{"rpm":2999.4}}`, models.SlotRPM, "2999"},
		{"battery", `{"drivetrain":{"battery_voltage":12.345}}`, models.SlotBattery, "12.3"},
		{"coolant", `{"drivetrain":{"coolant_temp":90}}`, models.SlotCoolant, "90.0"},
		{"cabin", `{"environment":{"cabin_temp":21.96}}`, models.SlotCabin, "22.0"},
		{"outside", `{"environment":{"outside_temp":-3.14}}`, models.SlotOutside, "-3.1"},
		{"humidity", `{"environment":{"humidity":47.6}}`, models.SlotHumidity, "48"},
		{"fuel", `{"trip":{"fuel_level":55.4}}`, models.SlotFuel, "55"},
		{"range", `{"trip":{"range_km":210.2}}`, models.SlotRange, "210"},
		{"efficiency", `{"trip":{"efficiency":6.27}}`, models.SlotEfficiency, "6.3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := newSlots()
			Render(decode(t, tc.payload), slots)

			got, ok := slots.Get(tc.slot)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderPlaceholderFields(t *testing.T) {
	placeholderSlots := map[models.SlotID][2]string{
		models.SlotBattery:    {GroupDrivetrain, "battery_voltage"},
		models.SlotCoolant:    {GroupDrivetrain, "coolant_temp"},
		models.SlotCabin:      {GroupEnvironment, "cabin_temp"},
		models.SlotOutside:    {GroupEnvironment, "outside_temp"},
		models.SlotHumidity:   {GroupEnvironment, "humidity"},
		models.SlotFuel:       {GroupTrip, "fuel_level"},
		models.SlotRange:      {GroupTrip, "range_km"},
		models.SlotEfficiency: {GroupTrip, "efficiency"},
	}

	for slot, path := range placeholderSlots {
		group, field := path[0], path[1]
		payloads := map[string]any{
			"group absent":   map[string]any{},
			"group null":     map[string]any{group: nil},
			"group not map":  map[string]any{group: []any{1.0, 2.0}},
			"field missing":  map[string]any{group: map[string]any{}},
			"field string":   map[string]any{group: map[string]any{field: "high"}},
			"field bool":     map[string]any{group: map[string]any{field: true}},
			"field null":     map[string]any{group: map[string]any{field: nil}},
			"payload nil":    nil,
			"payload string": "offline",
		}
		for name, payload := range payloads {
			t.Run(string(slot)+"/"+name, func(t *testing.T) {
				slots := newSlots()
				slots.Set(slot, "stale")

				Render(payload, slots)

				got, _ := slots.Get(slot)
				assert.Equal(t, models.Placeholder, got)
			})
		}
	}
}

func TestRenderKeepsUnchangedWhenAbsent(t *testing.T) {
	slots := newSlots()
	slots.Set(models.SlotTitle, "Commute")
	slots.Set(models.SlotSpeed, "88")
	slots.Set(models.SlotRPM, "1500")

	for _, raw := range []string{
		`{}`,
		`{"summary":null,"drivetrain":"broken"}`,
		`{"summary":{"title":42,"speed":"fast"},"drivetrain":{"rpm":null}}`,
		`{"summary":{"title":""}}`,
		`[]`,
	} {
		Render(decode(t, raw), slots)

		title, _ := slots.Get(models.SlotTitle)
		speed, _ := slots.Get(models.SlotSpeed)
		rpm, _ := slots.Get(models.SlotRPM)
		assert.Equal(t, "Commute", title, raw)
		assert.Equal(t, "88", speed, raw)
		assert.Equal(t, "1500", rpm, raw)
	}
}

func TestRenderEndToEndPayload(t *testing.T) {
	slots := newSlots()
	payload := decode(t, `{"summary":{"title":"Daily","speed":101.6},"drivetrain":{"rpm":2999.4,"battery_voltage":12.849},"trip":{"fuel_level":40.5,"range_km":210.2}}`)

	Render(payload, slots)

	want := map[models.SlotID]string{
		models.SlotTitle:      "Daily",
		models.SlotSpeed:      "102",
		models.SlotRPM:        "2999",
		models.SlotBattery:    "12.8",
		models.SlotCoolant:    "--",
		models.SlotCabin:      "--",
		models.SlotOutside:    "--",
		models.SlotHumidity:   "--",
		models.SlotFuel:       "40",
		models.SlotRange:      "210",
		models.SlotEfficiency: "--",
	}
	assert.Equal(t, want, slots.Snapshot())
}

func TestRenderIsIdempotent(t *testing.T) {
	slots := newSlots()
	payload := decode(t, `{"summary":{"speed":64.4},"environment":{"humidity":"n/a","cabin_temp":19.95},"trip":{"efficiency":7.1}}`)

	Render(payload, slots)
	first := slots.Snapshot()
	Render(payload, slots)

	assert.Equal(t, first, slots.Snapshot())
}

func TestRenderIgnoresUnknownFields(t *testing.T) {
	slots := newSlots()
	Render(decode(t, `{"timestamp":1700000000,"summary":{"odometer":42000.1,"speed":10},"extra":{"a":1}}`), slots)

	speed, _ := slots.Get(models.SlotSpeed)
	assert.Equal(t, "10", speed)
	assert.Len(t, slots.Snapshot(), 11)
}

func TestFieldsTable(t *testing.T) {
	table := Fields()
	require.Len(t, table, 11)

	seen := map[models.SlotID]bool{}
	for _, f := range table {
		seen[f.Slot] = true
		keep := f.Slot == models.SlotTitle || f.Slot == models.SlotSpeed || f.Slot == models.SlotRPM
		if keep {
			assert.Equal(t, KeepPrevious, f.OnAbsent, f.Slot)
		} else {
			assert.Equal(t, ShowPlaceholder, f.OnAbsent, f.Slot)
		}
	}
	for _, id := range models.AllSlots() {
		assert.True(t, seen[id], "slot %s has no field", id)
	}
}
