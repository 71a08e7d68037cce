package rtc

import (
	"github.com/pion/logging"
)

// Constants exported to the host alongside the factories.
const (
	// Version is the binding layer version reported to hosts.
	Version = "1.0.0"

	// IsNativeImplementation tells hosts this module is backed by a real
	// engine rather than a pure-scripted polyfill.
	IsNativeImplementation = true
)

// Config configures Init.
type Config struct {
	// Provider selects the engine implementation. The zero value picks the
	// best available engine.
	Provider EngineProvider

	// Engine bypasses provider selection with a caller-supplied engine.
	// Mainly for tests and embedders that carry their own engine binding.
	Engine Engine

	// LoggerFactory is the factory for creating loggers, threaded through
	// to the engine. When nil nothing is logged.
	LoggerFactory logging.LoggerFactory
}

// Bindings is the table of function references an embedding host registers
// under its own export mechanism at startup. Every call through the table
// is stateless request/response; the only state behind it is the engine it
// delegates to.
type Bindings struct {
	// CreatePeerConnection delegates to the engine's connection factory,
	// passing config through unmodified: no validation, no default
	// injection, and engine failures propagate unchanged.
	CreatePeerConnection func(config HostObject) (PeerConnection, error)

	// CreateSessionDescription builds a SessionDescription from the fields
	// present on init.
	CreateSessionDescription func(init HostObject) SessionDescription

	// CreateIceCandidate builds an ICECandidate from the fields present on
	// init.
	CreateIceCandidate func(init HostObject) ICECandidate

	engine Engine
	log    logging.LeveledLogger
}

// Init builds the binding table. The embedding host calls it once at
// startup; nothing is registered globally here, and the host owns where
// the table's functions end up.
func Init(config Config) (*Bindings, error) {
	engine := config.Engine
	if engine == nil {
		var err error
		engine, err = newEngine(config.Provider, config.LoggerFactory)
		if err != nil {
			return nil, err
		}
	}

	b := &Bindings{engine: engine}
	if config.LoggerFactory != nil {
		b.log = config.LoggerFactory.NewLogger("rtc")
		b.log.Infof("binding layer %s initialized with %s engine", Version, engine.Name())
	}

	b.CreatePeerConnection = func(config HostObject) (PeerConnection, error) {
		if b.log != nil {
			b.log.Debugf("creating peer connection via %s", b.engine.Name())
		}
		return b.engine.NewPeerConnection(config)
	}
	b.CreateSessionDescription = NewSessionDescription
	b.CreateIceCandidate = NewICECandidate

	return b, nil
}

// Engine returns the engine behind the table.
func (b *Bindings) Engine() Engine { return b.engine }

// Exports returns the table under the names hosts see. The host registers
// these entries verbatim on its module export surface.
func (b *Bindings) Exports() map[string]any {
	return map[string]any{
		"RTCPeerConnection":      b.CreatePeerConnection,
		"RTCSessionDescription":  b.CreateSessionDescription,
		"RTCIceCandidate":        b.CreateIceCandidate,
		"version":                Version,
		"isNativeImplementation": IsNativeImplementation,
	}
}
