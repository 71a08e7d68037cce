package rtc

import (
	"errors"
	"testing"
)

func TestEngineProviderString(t *testing.T) {
	tests := []struct {
		provider EngineProvider
		want     string
	}{
		{ProviderAuto, "auto"},
		{ProviderNative, "native"},
		{ProviderPion, "pion"},
		{EngineProvider(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.provider.String(); got != tt.want {
			t.Errorf("EngineProvider(%d).String() = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestNewEngineAuto(t *testing.T) {
	e, err := newEngine(ProviderAuto, nil)
	if err != nil {
		t.Fatalf("auto selection must always yield an engine: %v", err)
	}
	if name := e.Name(); name != "native" && name != "pion" {
		t.Errorf("unexpected engine %q", name)
	}
	if !IsNativeAvailable() && e.Name() != "pion" {
		t.Error("auto must fall back to the pure-Go engine when the native library is absent")
	}
}

func TestNewEnginePion(t *testing.T) {
	e, err := newEngine(ProviderPion, nil)
	if err != nil {
		t.Fatalf("newEngine(pion): %v", err)
	}
	if e.Name() != "pion" {
		t.Errorf("Name() = %q", e.Name())
	}
}

func TestNewEngineNativeUnavailable(t *testing.T) {
	if IsNativeAvailable() {
		t.Skip("librtc_native present")
	}
	_, err := newEngine(ProviderNative, nil)
	if !errors.Is(err, ErrEngineNotAvailable) {
		t.Errorf("want ErrEngineNotAvailable, got %v", err)
	}
}

func TestNewEngineUnknownProvider(t *testing.T) {
	_, err := newEngine(EngineProvider(99), nil)
	if !errors.Is(err, ErrEngineNotAvailable) {
		t.Errorf("want ErrEngineNotAvailable, got %v", err)
	}
}

func TestNewConnID(t *testing.T) {
	first := newConnID()
	second := newConnID()
	if len(first) != 16 || len(second) != 16 {
		t.Errorf("ids must be 16 runes: %q %q", first, second)
	}
	if first == second {
		t.Error("ids must differ")
	}
}
