package main

import (
	"os"

	"github.com/rustyeddy/tradejournal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
