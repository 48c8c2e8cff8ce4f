package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine; the environment may already hold the key
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
