package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/labscan/cmd/labscan/commands"
)

func main() {
	_ = godotenv.Load()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
