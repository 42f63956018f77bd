package main

import (
	"os"

	"github.com/stanstork/execdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
