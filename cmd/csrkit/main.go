// SPDX-License-Identifier: MIT

// Command csrkit runs the sparse kernels on Matrix Market files.
//
// Usage:
//
//	csrkit info A.mtx
//	csrkit add A.mtx B.mtx --alpha -1 -o C.mtx
//	csrkit mul A.mtx B.mtx --algo rmerge -o C.mtx
//	csrkit verify A.mtx B.mtx --tol 1e-3
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
