package main

import (
	"os"

	"github.com/bukukas/bukukas/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
