package main

import (
	"os"

	"github.com/fileconv/fileconv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
