package main

import (
	"os"

	"github.com/jackgraver/simple-track/logger"
)

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
