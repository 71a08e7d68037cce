// Package rtc exposes WebRTC peer-connection creation and the two signaling
// descriptor factories to dynamically-typed embedding hosts, delegating all
// protocol behavior to an underlying engine.
//
// # Architecture
//
//	host object -> CreateSessionDescription / CreateIceCandidate -> record
//	host object -> CreatePeerConnection -> Engine -> PeerConnection handle
//
// A host embeds the layer by calling Init once at startup and registering
// the returned table under its own export mechanism (see Bindings.Exports).
// The descriptor factories copy only the fields present on their input,
// drop everything else, and never validate or error; peer-connection
// creation is an opaque pass-through to the engine's factory.
//
// # Engines
//
// Two providers are built in. The native provider loads librtc_native at
// runtime through purego (CGO_ENABLED=0) and drives peer connections over
// its C ABI; set RTC_NATIVE_LIB_PATH or RTC_SDK_LIB_PATH to the directory
// containing the library. The pion provider is a pure-Go engine backed by
// pion/webrtc and needs no native code. ProviderAuto prefers the native
// library when it loads and falls back to the pure-Go engine.
//
// # Build Tags
//
//   - nonative: disable the native provider
//
// The native provider is compiled on darwin and linux only; other
// platforms always report it unavailable.
package rtc
