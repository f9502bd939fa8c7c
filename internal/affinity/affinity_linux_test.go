//go:build linux

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported())
}

func TestPin(t *testing.T) {
	// Pin to a CPU the process is actually allowed to run on; cgroup
	// cpusets may exclude CPU 0.
	var allowed unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &allowed))

	target := -1
	for cpu := 0; cpu < runtime.NumCPU()*2; cpu++ {
		if allowed.IsSet(cpu) {
			target = cpu
			break
		}
	}
	require.GreaterOrEqual(t, target, 0, "no allowed CPU found")

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	require.NoError(t, Pin(target))

	var got unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &got))
	assert.True(t, got.IsSet(target))
	assert.Equal(t, 1, got.Count())

	// Restore the original mask for the rest of the test binary.
	require.NoError(t, unix.SchedSetaffinity(0, &allowed))
}

func TestNumNUMANodes(t *testing.T) {
	assert.GreaterOrEqual(t, NumNUMANodes(), 1)
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("0"))
	assert.True(t, isDigits("17"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("x1"))
}
