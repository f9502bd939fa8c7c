//go:build linux

package affinity

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Supported reports whether thread pinning works on this platform.
func Supported() bool { return true }

// Pin binds the calling thread to the given logical CPU. The caller
// must hold runtime.LockOSThread for the duration of the pin,
// otherwise the Go scheduler may move the goroutine to another thread.
func Pin(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)

	// Thread id 0 means the calling thread.
	return unix.SchedSetaffinity(0, &set)
}

// NumNUMANodes counts the memory nodes exposed under sysfs.
// Returns 1 if the topology cannot be read.
func NumNUMANodes() int {
	entries, err := os.ReadDir("/sys/devices/system/node")
	if err != nil {
		return 1
	}

	n := 0
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "node") && isDigits(name[len("node"):]) {
			n++
		}
	}

	if n == 0 {
		return 1
	}
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
