package main

import (
	"os"

	"github.com/coregx/coregen/cmd/coregen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
