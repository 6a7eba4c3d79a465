package state

import (
	"errors"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Kind
		wantErr  bool
	}{
		{"Lower light", "light", Light, false},
		{"Mixed case light", "LiGhT", Light, false},
		{"Upper fan", "FAN", Fan, false},
		{"Padded fan", "  fan ", Fan, false},
		{"Unknown kind", "heater", 0, true},
		{"Empty kind", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKind) {
					t.Errorf("ParseKind(%q) error = %v, expected ErrInvalidKind", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) returned error: %v", tt.input, err)
			}
			if kind != tt.expected {
				t.Errorf("ParseKind(%q) = %v, expected %v", tt.input, kind, tt.expected)
			}
		})
	}
}

func TestNewDeviceDefaults(t *testing.T) {
	tests := []struct {
		kind    Kind
		setting int
		max     int
		label   string
	}{
		{Light, 5, 10, "brightness"},
		{Fan, 1, 5, "speed"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			dev, err := NewDevice(tt.kind, "Test")
			if err != nil {
				t.Fatalf("NewDevice returned error: %v", err)
			}
			if dev.IsOn() {
				t.Error("new device should be OFF")
			}
			if dev.Setting() != tt.setting {
				t.Errorf("Setting() = %d, expected %d", dev.Setting(), tt.setting)
			}
			if _, hi := tt.kind.Bounds(); hi != tt.max {
				t.Errorf("Bounds() max = %d, expected %d", hi, tt.max)
			}
			if tt.kind.SettingName() != tt.label {
				t.Errorf("SettingName() = %s, expected %s", tt.kind.SettingName(), tt.label)
			}
		})
	}

	if _, err := NewDevice(Kind(42), "Bad"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("NewDevice with unknown kind error = %v, expected ErrInvalidKind", err)
	}
}

func TestTurnOnResetsSetting(t *testing.T) {
	for _, kind := range []Kind{Light, Fan} {
		dev, _ := NewDevice(kind, "Test")
		dev.TurnOn()
		_, hi := kind.Bounds()
		if err := dev.Adjust(hi); err != nil {
			t.Fatalf("Adjust(%d) returned error: %v", hi, err)
		}
		if !dev.TurnOff() {
			t.Error("TurnOff() on a running device should report a change")
		}
		if !dev.TurnOn() {
			t.Error("TurnOn() on a stopped device should report a change")
		}
		if dev.Setting() != kind.Default() {
			t.Errorf("%v setting after TurnOn() = %d, expected %d", kind, dev.Setting(), kind.Default())
		}
	}
}

func TestTurnOnWhenAlreadyOn(t *testing.T) {
	dev, _ := NewDevice(Light, "Lamp")
	dev.TurnOn()
	_ = dev.Adjust(8)

	if dev.TurnOn() {
		t.Error("TurnOn() on a running device should be a no-op")
	}
	if dev.Setting() != 8 {
		t.Errorf("Setting() = %d, expected the no-op TurnOn to keep 8", dev.Setting())
	}
	dev.TurnOff()
	if dev.TurnOff() {
		t.Error("TurnOff() on a stopped device should be a no-op")
	}
}

func TestAdjustBounds(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		level int
		ok    bool
	}{
		{"Light low boundary", Light, 1, true},
		{"Light high boundary", Light, 10, true},
		{"Light below", Light, 0, false},
		{"Light above", Light, 11, false},
		{"Light negative", Light, -3, false},
		{"Fan low boundary", Fan, 1, true},
		{"Fan high boundary", Fan, 5, true},
		{"Fan below", Fan, 0, false},
		{"Fan above", Fan, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, _ := NewDevice(tt.kind, "Test")
			before := dev.Setting()
			err := dev.Adjust(tt.level)
			if tt.ok {
				if err != nil {
					t.Fatalf("Adjust(%d) returned error: %v", tt.level, err)
				}
				if dev.Setting() != tt.level {
					t.Errorf("Setting() = %d, expected %d", dev.Setting(), tt.level)
				}
				return
			}
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Adjust(%d) error = %v, expected ErrOutOfRange", tt.level, err)
			}
			var rerr *RangeError
			if !errors.As(err, &rerr) || rerr.Level != tt.level {
				t.Errorf("Adjust(%d) error should be a RangeError carrying the level, got %v", tt.level, err)
			}
			if dev.Setting() != before {
				t.Errorf("failed Adjust changed setting from %d to %d", before, dev.Setting())
			}
		})
	}
}

func TestAdjustIdempotent(t *testing.T) {
	once, _ := NewDevice(Fan, "Desk")
	twice, _ := NewDevice(Fan, "Desk")

	_ = once.Adjust(3)
	_ = twice.Adjust(3)
	_ = twice.Adjust(3)

	if once.Snapshot() != twice.Snapshot() {
		t.Errorf("Snapshot after one Adjust = %+v, after two = %+v", once.Snapshot(), twice.Snapshot())
	}
}

func TestAdjustDoesNotRequirePower(t *testing.T) {
	dev, _ := NewDevice(Light, "Lamp")
	if err := dev.Adjust(2); err != nil {
		t.Fatalf("Adjust on OFF device returned error: %v", err)
	}
	if dev.IsOn() {
		t.Error("Adjust should not power the device on")
	}
}

func TestStatus(t *testing.T) {
	lamp, _ := NewDevice(Light, "Lamp")
	if lamp.Status() != "Lamp: OFF" {
		t.Errorf("Status() = %q, expected %q", lamp.Status(), "Lamp: OFF")
	}

	lamp.TurnOn()
	_ = lamp.Adjust(8)
	expected := "Lamp: ON [████████--] 8/10"
	if lamp.Status() != expected {
		t.Errorf("Status() = %q, expected %q", lamp.Status(), expected)
	}
	if n := strings.Count(lamp.Status(), "█"); n != 8 {
		t.Errorf("Status() has %d filled segments, expected 8", n)
	}

	fan, _ := NewDevice(Fan, "Desk")
	fan.TurnOn()
	if fan.Status() != "Desk: ON [█----] 1/5" {
		t.Errorf("Status() = %q", fan.Status())
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		filled   int
		width    int
		expected string
	}{
		{0, 3, "[---]"},
		{3, 5, "[███--]"},
		{5, 5, "[█████]"},
		{9, 5, "[█████]"},
		{-1, 2, "[--]"},
	}

	for _, tt := range tests {
		if got := Bar(tt.filled, tt.width); got != tt.expected {
			t.Errorf("Bar(%d, %d) = %q, expected %q", tt.filled, tt.width, got, tt.expected)
		}
	}
}

func TestSnapshot(t *testing.T) {
	dev, _ := NewDevice(Fan, "Ceiling")
	dev.TurnOn()
	_ = dev.Adjust(4)

	snap := dev.Snapshot()
	expected := DeviceState{Name: "Ceiling", Kind: "fan", On: true, Setting: 4, Max: 5}
	if snap != expected {
		t.Errorf("Snapshot() = %+v, expected %+v", snap, expected)
	}
}
