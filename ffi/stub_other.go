//go:build !linux

package ffi

import "fmt"

// Open is only available on linux, where the native compositor library runs.
// Other platforms can still use the fake in ffitest.
func Open() (Lib, error) {
	return nil, fmt.Errorf("ffi: native library loading is linux-only")
}
