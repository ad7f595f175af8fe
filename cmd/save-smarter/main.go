package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fallbackLogger(os.Stderr).Fatal("command failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
