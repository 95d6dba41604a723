package main

import (
	"os"

	"github.com/n0roo/infradocs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
