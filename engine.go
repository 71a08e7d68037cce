package rtc

import (
	"errors"
	"fmt"

	"github.com/pion/logging"
	"github.com/pion/randutil"
)

var (
	ErrEngineNotAvailable = errors.New("engine not available")
	ErrConnectionClosed   = errors.New("peer connection closed")
)

// Engine creates peer connections. Implementations own all protocol
// behavior (ICE negotiation, SDP handling, transport); the binding layer
// addresses an engine only through this interface and never reaches into
// engine internals.
type Engine interface {
	// Name identifies the engine implementation.
	Name() string

	// NewPeerConnection creates a peer connection from a host configuration
	// object. The configuration passes through unmodified: no defaults are
	// injected, nothing is validated, and any failure is the engine's own
	// error, untranslated.
	NewPeerConnection(config HostObject) (PeerConnection, error)
}

// PeerConnection is an engine-owned connection handle. Its lifetime and
// internal state transitions belong to the engine; this layer only creates,
// negotiates, and closes.
type PeerConnection interface {
	// ID returns an identifier unique to this connection.
	ID() string

	CreateOffer() (SessionDescription, error)
	CreateAnswer() (SessionDescription, error)
	SetLocalDescription(desc SessionDescription) error
	SetRemoteDescription(desc SessionDescription) error
	LocalDescription() *SessionDescription
	RemoteDescription() *SessionDescription
	AddICECandidate(candidate ICECandidate) error

	// OnICECandidate registers f to receive trickled local candidates as
	// gathering produces them. A nil candidate signals the end of
	// gathering.
	OnICECandidate(f func(*ICECandidate))

	Close() error
}

// EngineProvider identifies an engine implementation.
type EngineProvider uint8

const (
	ProviderAuto   EngineProvider = iota // Pick the best available engine
	ProviderNative                       // librtc_native via purego
	ProviderPion                         // Pure-Go engine backed by pion/webrtc
	providerCount
)

// providerMeta contains static metadata about a provider.
type providerMeta struct {
	Name      string
	Available func() bool
	New       func(lf logging.LoggerFactory) (Engine, error)
}

var engineProviders = [providerCount]providerMeta{
	ProviderAuto:   {Name: "auto"},
	ProviderNative: {Name: "native", Available: IsNativeAvailable, New: newNativeEngine},
	ProviderPion:   {Name: "pion", Available: func() bool { return true }, New: newPionEngine},
}

func (p EngineProvider) String() string {
	if p < providerCount {
		return engineProviders[p].Name
	}
	return "unknown"
}

// newEngine resolves a provider to a concrete engine. Auto prefers the
// native library when it loads and falls back to the pure-Go engine.
func newEngine(p EngineProvider, lf logging.LoggerFactory) (Engine, error) {
	if p == ProviderAuto {
		if IsNativeAvailable() {
			return newNativeEngine(lf)
		}
		return newPionEngine(lf)
	}
	if p >= providerCount {
		return nil, fmt.Errorf("%w: unknown provider %d", ErrEngineNotAvailable, p)
	}
	meta := engineProviders[p]
	if !meta.Available() {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotAvailable, meta.Name)
	}
	return meta.New(lf)
}

const connIDRunes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newConnID generates a connection identifier. Falls back to a math random
// source if crypto randomness is unavailable.
func newConnID() string {
	id, err := randutil.GenerateCryptoRandomString(16, connIDRunes)
	if err != nil {
		return randutil.NewMathRandomGenerator().GenerateString(16, connIDRunes)
	}
	return id
}
