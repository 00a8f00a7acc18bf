package encoder

import (
	"context"
	"os/exec"

	"fontconv/logger"
	"fontconv/woff2"
)

// EncodeFunc is the function signature for any WOFF2 encoder. It returns
// the encoded file; writing it out is left to the caller so that a
// failed conversion never leaves a partial output behind.
type EncodeFunc func(ctx context.Context, input string, opts EncodeOptions) ([]byte, error)

// EncodeOptions tune the brotli stream. Only the native encoder honours
// them; the external tools use their own fixed settings.
type EncodeOptions struct {
	Quality    int // 0-11
	WindowBits int // 10-24
}

// DefaultOptions returns maximum compression.
func DefaultOptions() EncodeOptions {
	def := woff2.DefaultOptions()
	return EncodeOptions{Quality: def.Quality, WindowBits: def.WindowBits}
}

// Registry maps encoder name → encoder function
var Registry = map[string]EncodeFunc{}

// Register adds encoder if the underlying command exists, logs status
func Register(name string, cmdName string, fn EncodeFunc) {
	if _, err := exec.LookPath(cmdName); err != nil {
		logger.Debugf("encoder [%s] skipped: command '%s' not found in PATH", name, cmdName)
		return
	}
	Registry[name] = fn
	logger.Debugf("encoder [%s] registered (command: %s)", name, cmdName)
}

// RegisterNative registers the in-process encoder (no command dependency)
func RegisterNative() {
	Registry["native"] = EncodeNative
	logger.Debugf("encoder [native] registered (no command required)")
}

// Get looks up an encoder by name
func Get(name string) (EncodeFunc, bool) {
	fn, ok := Registry[name]
	return fn, ok
}

// Names returns the registered encoder names in no particular order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

// RegisterDefaults registers every encoder available on this machine.
func RegisterDefaults() {
	RegisterNative()
	Register("woff2_compress", "woff2_compress", EncodeWithWoff2Compress)
	Register("fonttools", "python3", EncodeWithFontTools)
}
