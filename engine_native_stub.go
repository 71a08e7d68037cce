//go:build (!darwin && !linux) || nonative

package rtc

import (
	"fmt"

	"github.com/pion/logging"
)

// IsNativeAvailable reports whether librtc_native can be loaded. Always
// false on platforms without dynamic loading support or when built with
// the nonative tag.
func IsNativeAvailable() bool { return false }

// NativeEngineVersion returns the version string reported by
// librtc_native, or "" when the library is unavailable.
func NativeEngineVersion() string { return "" }

func newNativeEngine(logging.LoggerFactory) (Engine, error) {
	return nil, fmt.Errorf("%w: native", ErrEngineNotAvailable)
}
