package main

import (
	"os"

	"github.com/Mayank2601/financial-dashboard/internal/commands"
	"github.com/Mayank2601/financial-dashboard/internal/logger"
)

func main() {
	logger.Init()
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
