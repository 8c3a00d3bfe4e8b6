package main

import (
	"os"
)

// version is set at build time
var version = "0.1.0"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
