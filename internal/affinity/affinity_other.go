//go:build !linux

package affinity

import "errors"

// Supported reports whether thread pinning works on this platform.
func Supported() bool { return false }

// Pin is not available on this platform.
func Pin(int) error { return errors.ErrUnsupported }

// NumNUMANodes returns 1; the topology is not exposed here.
func NumNUMANodes() int { return 1 }
