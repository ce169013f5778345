// Package builder assembles FileSystemObject values from URIs or direct
// backend inputs. Each backend has its own builder type; all three
// follow the same moved-builder shape (methods consume a value and
// return a new one) so a caller writes a single fluent chain ending in
// Build, with no intermediate state visible before that call.
package builder

import (
	"math"
	"runtime"
)

const maxConcurrency = math.MaxUint16

// defaultConcurrency mirrors the source's default: twice the available
// parallelism, capped at the width of the wire representation it was
// chosen to fit (uint16) so every backend's client pool stays bounded
// even on very wide machines.
func defaultConcurrency() int {
	n := runtime.NumCPU() * 2
	if n > maxConcurrency {
		n = maxConcurrency
	}
	if n < 1 {
		n = 1
	}
	return n
}

func orDefaultChunkSize(requested, fallback int64) int64 {
	if requested <= 0 {
		return fallback
	}
	return requested
}
