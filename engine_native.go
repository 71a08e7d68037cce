//go:build (darwin || linux) && !nonative

// Native engine over librtc_native using purego.
//
// librtc_native is a thin C wrapper around the platform real-time
// communication engine with a primitive-only API: peer connections are
// uint64 handles, descriptions cross the ABI as NUL-terminated strings or
// caller-owned out buffers, and status is an int32 (negative = error).
//
// Library locations checked (in order):
//   - RTC_NATIVE_LIB_PATH environment variable
//   - RTC_SDK_LIB_PATH environment variable (shared with the rest of the SDK)
//   - Executable directory
//   - build/ffi under the module root (development)
//   - System library paths

package rtc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/pion/logging"
)

var (
	rtcNativeOnce    sync.Once
	rtcNativeHandle  uintptr
	rtcNativeInitErr error
	rtcNativeLoaded  bool
)

// librtc_native function pointers
var (
	rtcNativePeerCreate       func(configJSON uintptr) uint64
	rtcNativePeerCreateOffer  func(peer uint64, outType uintptr, typeCapacity int32, outSDP uintptr, sdpCapacity int32) int32
	rtcNativePeerCreateAnswer func(peer uint64, outType uintptr, typeCapacity int32, outSDP uintptr, sdpCapacity int32) int32
	rtcNativePeerSetLocal     func(peer uint64, typ, sdp uintptr) int32
	rtcNativePeerSetRemote    func(peer uint64, typ, sdp uintptr) int32
	rtcNativePeerGetLocal     func(peer uint64, outType uintptr, typeCapacity int32, outSDP uintptr, sdpCapacity int32) int32
	rtcNativePeerGetRemote    func(peer uint64, outType uintptr, typeCapacity int32, outSDP uintptr, sdpCapacity int32) int32
	rtcNativePeerAddCandidate func(peer uint64, candidate, mid uintptr, mlineIndex int32) int32
	rtcNativePeerOnCandidate  func(peer uint64, callback uintptr) int32
	rtcNativePeerClose        func(peer uint64) int32

	rtcNativeGetError   func() uintptr
	rtcNativeGetVersion func() uintptr
)

// Constants from rtc_native.h
const (
	rtcNativeOK            = 0
	rtcNativeError         = -1
	rtcNativeErrorNoMem    = -2
	rtcNativeErrorInvalid  = -3
	rtcNativeErrorClosed   = -4
	rtcNativeErrorNoDesc   = -5
	rtcNativeErrorCapacity = -6

	nativeTypeCapacity = 16
	nativeSDPCapacity  = 1 << 16
)

// loadRTCNative loads the librtc_native shared library.
func loadRTCNative() error {
	rtcNativeOnce.Do(func() {
		rtcNativeInitErr = loadRTCNativeLib()
		if rtcNativeInitErr == nil {
			rtcNativeLoaded = true
		}
	})
	return rtcNativeInitErr
}

func loadRTCNativeLib() error {
	paths := rtcNativeLibPaths()

	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			rtcNativeHandle = handle
			if err := registerRTCNativeSymbols(); err != nil {
				purego.Dlclose(handle)
				lastErr = err
				continue
			}
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate paths")
	}
	return fmt.Errorf("load librtc_native: %w", lastErr)
}

func rtcNativeLibPaths() []string {
	libName := "librtc_native.so"
	if runtime.GOOS == "darwin" {
		libName = "librtc_native.dylib"
	}

	var paths []string

	if envPath := os.Getenv("RTC_NATIVE_LIB_PATH"); envPath != "" {
		paths = append(paths, filepath.Join(envPath, libName))
	}
	if envPath := os.Getenv("RTC_SDK_LIB_PATH"); envPath != "" {
		paths = append(paths, filepath.Join(envPath, libName))
	}

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), libName))
	}

	if root := findModuleRoot(); root != "" {
		paths = append(paths, filepath.Join(root, "build", "ffi", libName))
	}

	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			libName,
			"/usr/local/lib/"+libName,
			"/opt/homebrew/lib/"+libName,
		)
	case "linux":
		paths = append(paths,
			libName,
			"/usr/local/lib/"+libName,
			"/usr/lib/"+libName,
		)
	}

	return paths
}

func registerRTCNativeSymbols() (err error) {
	// RegisterLibFunc panics on a missing symbol.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("register librtc_native symbols: %v", r)
		}
	}()

	purego.RegisterLibFunc(&rtcNativePeerCreate, rtcNativeHandle, "rtc_native_peer_create")
	purego.RegisterLibFunc(&rtcNativePeerCreateOffer, rtcNativeHandle, "rtc_native_peer_create_offer")
	purego.RegisterLibFunc(&rtcNativePeerCreateAnswer, rtcNativeHandle, "rtc_native_peer_create_answer")
	purego.RegisterLibFunc(&rtcNativePeerSetLocal, rtcNativeHandle, "rtc_native_peer_set_local_description")
	purego.RegisterLibFunc(&rtcNativePeerSetRemote, rtcNativeHandle, "rtc_native_peer_set_remote_description")
	purego.RegisterLibFunc(&rtcNativePeerGetLocal, rtcNativeHandle, "rtc_native_peer_get_local_description")
	purego.RegisterLibFunc(&rtcNativePeerGetRemote, rtcNativeHandle, "rtc_native_peer_get_remote_description")
	purego.RegisterLibFunc(&rtcNativePeerAddCandidate, rtcNativeHandle, "rtc_native_peer_add_ice_candidate")
	purego.RegisterLibFunc(&rtcNativePeerOnCandidate, rtcNativeHandle, "rtc_native_peer_on_ice_candidate")
	purego.RegisterLibFunc(&rtcNativePeerClose, rtcNativeHandle, "rtc_native_peer_close")

	purego.RegisterLibFunc(&rtcNativeGetError, rtcNativeHandle, "rtc_native_get_error")
	purego.RegisterLibFunc(&rtcNativeGetVersion, rtcNativeHandle, "rtc_native_get_version")

	return nil
}

// IsNativeAvailable reports whether librtc_native can be loaded.
func IsNativeAvailable() bool {
	return loadRTCNative() == nil
}

// NativeEngineVersion returns the version string reported by
// librtc_native, or "" when the library is unavailable.
func NativeEngineVersion() string {
	if loadRTCNative() != nil {
		return ""
	}
	return goStringFromPtr(rtcNativeGetVersion())
}

func nativeLastError() string {
	msg := goStringFromPtr(rtcNativeGetError())
	if msg == "" {
		msg = "unknown error"
	}
	return msg
}

func nativeCallError(op string, rc int32) error {
	return fmt.Errorf("rtc_native: %s failed (%d): %s", op, rc, nativeLastError())
}

// nativeEngine drives peer connections over the librtc_native C ABI.
type nativeEngine struct {
	log logging.LeveledLogger
}

func newNativeEngine(lf logging.LoggerFactory) (Engine, error) {
	if err := loadRTCNative(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineNotAvailable, err)
	}
	e := &nativeEngine{}
	if lf != nil {
		e.log = lf.NewLogger("rtc-native")
		e.log.Infof("librtc_native %s loaded", NativeEngineVersion())
	}
	return e, nil
}

func (e *nativeEngine) Name() string { return "native" }

func (e *nativeEngine) NewPeerConnection(config HostObject) (PeerConnection, error) {
	// The configuration crosses the ABI as JSON, with no key filtering and
	// no defaults injected. A nil config passes NULL.
	var configPtr uintptr
	var configBuf []byte
	if config != nil {
		encoded, err := json.Marshal(config)
		if err != nil {
			return nil, err
		}
		configBuf = append(encoded, 0)
		configPtr = uintptr(unsafe.Pointer(&configBuf[0]))
	}

	handle := rtcNativePeerCreate(configPtr)
	runtime.KeepAlive(configBuf)
	if handle == 0 {
		return nil, fmt.Errorf("rtc_native: peer create failed: %s", nativeLastError())
	}

	conn := &nativePeerConnection{id: newConnID(), handle: handle}
	if e.log != nil {
		e.log.Debugf("created peer connection %s (handle %d)", conn.id, handle)
	}
	return conn, nil
}

// nativePeerConnection is an opaque uint64 handle owned by librtc_native.
type nativePeerConnection struct {
	id     string
	handle uint64

	mu     sync.Mutex
	closed bool
}

func (p *nativePeerConnection) ID() string { return p.id }

func (p *nativePeerConnection) CreateOffer() (SessionDescription, error) {
	return p.describe("create offer", rtcNativePeerCreateOffer)
}

func (p *nativePeerConnection) CreateAnswer() (SessionDescription, error) {
	return p.describe("create answer", rtcNativePeerCreateAnswer)
}

type nativeDescribeFunc func(peer uint64, outType uintptr, typeCapacity int32, outSDP uintptr, sdpCapacity int32) int32

func (p *nativePeerConnection) describe(op string, call nativeDescribeFunc) (SessionDescription, error) {
	typeBuf := make([]byte, nativeTypeCapacity)
	sdpBuf := make([]byte, nativeSDPCapacity)
	rc := call(p.handle,
		uintptr(unsafe.Pointer(&typeBuf[0])), int32(len(typeBuf)),
		uintptr(unsafe.Pointer(&sdpBuf[0])), int32(len(sdpBuf)))
	runtime.KeepAlive(typeBuf)
	runtime.KeepAlive(sdpBuf)
	if rc < 0 {
		return SessionDescription{}, nativeCallError(op, rc)
	}
	typ := goStringFromBuf(typeBuf)
	sdp := string(sdpBuf[:rc])
	return SessionDescription{Type: &typ, SDP: &sdp}, nil
}

func (p *nativePeerConnection) SetLocalDescription(desc SessionDescription) error {
	return p.setDescription("set local description", rtcNativePeerSetLocal, desc)
}

func (p *nativePeerConnection) SetRemoteDescription(desc SessionDescription) error {
	return p.setDescription("set remote description", rtcNativePeerSetRemote, desc)
}

func (p *nativePeerConnection) setDescription(op string, call func(peer uint64, typ, sdp uintptr) int32, desc SessionDescription) error {
	// Absent fields cross the ABI as NULL, preserving their optionality.
	var typPtr, sdpPtr uintptr
	var typBuf, sdpBuf []byte
	if desc.Type != nil {
		typBuf = cString(*desc.Type)
		typPtr = uintptr(unsafe.Pointer(&typBuf[0]))
	}
	if desc.SDP != nil {
		sdpBuf = cString(*desc.SDP)
		sdpPtr = uintptr(unsafe.Pointer(&sdpBuf[0]))
	}
	rc := call(p.handle, typPtr, sdpPtr)
	runtime.KeepAlive(typBuf)
	runtime.KeepAlive(sdpBuf)
	if rc != rtcNativeOK {
		return nativeCallError(op, rc)
	}
	return nil
}

func (p *nativePeerConnection) LocalDescription() *SessionDescription {
	return p.getDescription(rtcNativePeerGetLocal)
}

func (p *nativePeerConnection) RemoteDescription() *SessionDescription {
	return p.getDescription(rtcNativePeerGetRemote)
}

func (p *nativePeerConnection) getDescription(call nativeDescribeFunc) *SessionDescription {
	typeBuf := make([]byte, nativeTypeCapacity)
	sdpBuf := make([]byte, nativeSDPCapacity)
	rc := call(p.handle,
		uintptr(unsafe.Pointer(&typeBuf[0])), int32(len(typeBuf)),
		uintptr(unsafe.Pointer(&sdpBuf[0])), int32(len(sdpBuf)))
	runtime.KeepAlive(typeBuf)
	runtime.KeepAlive(sdpBuf)
	if rc < 0 {
		return nil
	}
	typ := goStringFromBuf(typeBuf)
	sdp := string(sdpBuf[:rc])
	return &SessionDescription{Type: &typ, SDP: &sdp}
}

func (p *nativePeerConnection) AddICECandidate(candidate ICECandidate) error {
	var candPtr, midPtr uintptr
	var candBuf, midBuf []byte
	if candidate.Candidate != nil {
		candBuf = cString(*candidate.Candidate)
		candPtr = uintptr(unsafe.Pointer(&candBuf[0]))
	}
	if candidate.SDPMid != nil {
		midBuf = cString(*candidate.SDPMid)
		midPtr = uintptr(unsafe.Pointer(&midBuf[0]))
	}
	mlineIndex := int32(-1)
	if candidate.SDPMLineIndex != nil {
		mlineIndex = int32(*candidate.SDPMLineIndex)
	}
	rc := rtcNativePeerAddCandidate(p.handle, candPtr, midPtr, mlineIndex)
	runtime.KeepAlive(candBuf)
	runtime.KeepAlive(midBuf)
	if rc != rtcNativeOK {
		return nativeCallError("add ice candidate", rc)
	}
	return nil
}

// Trickled candidates arrive on a single shared trampoline keyed by peer
// handle; the native side invokes it from its own threads.
var (
	nativeCandidateOnce sync.Once
	nativeCandidatePtr  uintptr
	nativeCandidateMu   sync.Mutex
	nativeCandidateFns  = map[uint64]func(*ICECandidate){}
)

func nativeCandidateTrampoline(peer uint64, candidate, mid uintptr, mlineIndex int32) {
	nativeCandidateMu.Lock()
	f := nativeCandidateFns[peer]
	nativeCandidateMu.Unlock()
	if f == nil {
		return
	}
	if candidate == 0 {
		// End of gathering.
		f(nil)
		return
	}
	var out ICECandidate
	cand := goStringFromPtr(candidate)
	out.Candidate = &cand
	if mid != 0 {
		m := goStringFromPtr(mid)
		out.SDPMid = &m
	}
	if mlineIndex >= 0 {
		idx := uint16(mlineIndex)
		out.SDPMLineIndex = &idx
	}
	f(&out)
}

func (p *nativePeerConnection) OnICECandidate(f func(*ICECandidate)) {
	nativeCandidateOnce.Do(func() {
		nativeCandidatePtr = purego.NewCallback(nativeCandidateTrampoline)
	})
	nativeCandidateMu.Lock()
	nativeCandidateFns[p.handle] = f
	nativeCandidateMu.Unlock()
	rtcNativePeerOnCandidate(p.handle, nativeCandidatePtr)
}

func (p *nativePeerConnection) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	nativeCandidateMu.Lock()
	delete(nativeCandidateFns, p.handle)
	nativeCandidateMu.Unlock()

	if rc := rtcNativePeerClose(p.handle); rc != rtcNativeOK {
		return nativeCallError("close", rc)
	}
	return nil
}
