//go:build wasm

// Command fastfilter-wasm is the GOOS=js GOARCH=wasm entry point: it
// registers the wasmhost exports on the JS global object and then blocks,
// the same shape as sqldef's web/sqldef-wasm.go main().
package main

import "github.com/thekorn/fastfilter-search/wasmhost"

func main() {
	wasmhost.Run()
}
