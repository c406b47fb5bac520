package main

import (
	"fmt"
	"runtime"
	"sort"
)

// Version is the boot console release.
const Version = "1.0.0"

// compiledFeatures tracks build-time feature flags via init() registration.
var compiledFeatures []string

func init() {
	compiledFeatures = append(compiledFeatures, "script:lua", "charset:cp437")
}

func printFeatures() {
	fmt.Printf("Boot Console %s\n", Version)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("Compiled features:")

	sort.Strings(compiledFeatures)
	for _, f := range compiledFeatures {
		fmt.Printf("  %s\n", f)
	}
	if len(compiledFeatures) == 0 {
		fmt.Println("  (none)")
	}
}
