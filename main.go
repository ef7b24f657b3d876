package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/microhire/cmd"
)

func main() {
	// MICROHIRE_* variables may live in a local .env file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
