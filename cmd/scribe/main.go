package main

import (
	"os"

	"github.com/JaimeStill/scribe/cmd/scribe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
