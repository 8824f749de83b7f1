package main

import (
	"os"

	"pumpsizer/cmd/pumpsizer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
