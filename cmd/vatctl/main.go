package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nurpe/vat-invoicing/internal/cli"
	"github.com/nurpe/vat-invoicing/internal/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewWithWriter("development", os.Getenv("LOG_LEVEL"), os.Stderr)
	root := cli.NewRootCommand(cli.Options{Log: log})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
