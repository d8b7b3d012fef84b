package main

import (
	"os"

	"github.com/dshills/dirdocs/internal/cli"
)

var version = "1.0.0"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
