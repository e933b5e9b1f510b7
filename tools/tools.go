//go:build tools

// Package tools pins the dev-tool binaries this repo invokes
// (spell-checking, markdown table-of-contents generation) as real module
// dependencies, so `go mod tidy` doesn't drop them just because no
// non-build code imports them.
package tools

import (
	_ "github.com/client9/misspell/cmd/misspell"
	_ "sigs.k8s.io/mdtoc"
)
