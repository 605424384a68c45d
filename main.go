package main

import (
	"os"

	"github.com/recordkit/schemac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
