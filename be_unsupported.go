//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// Rendered frames are handed to the host backends as raw bytes without
// byte swapping.
var _ = "the boot console requires a little-endian architecture" + 1
