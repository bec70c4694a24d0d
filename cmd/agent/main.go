package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/js0094q/trading-agent/cmd/agent/cmd"
)

func main() {
	// Optional .env for AGENT_* defaults; absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
