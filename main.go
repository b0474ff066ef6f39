package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"ledgerline/statement-ingest/cmd/categorize"
	"ledgerline/statement-ingest/cmd/ingest"
	"ledgerline/statement-ingest/cmd/root"
)

func init() {
	loadEnvSilently()

	root.Init()
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

// loadEnvSilently loads a .env file when one exists, before any logging is
// configured.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Exit(err)
	}
}
