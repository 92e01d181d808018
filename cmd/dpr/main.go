// Command dpr compares builds' damage per round against the baseline rogue.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	dprcmd "github.com/KirkDiggler/dnd-dpr/internal/cmd/dpr"
)

func main() {
	// A .env file is optional for the CLI
	_ = godotenv.Load()

	cfg, err := dprcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Printf("parse flags: %v", err)
		os.Exit(dprcmd.ExitCode(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dprcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Printf("dpr: %v", err)
		stop()
		os.Exit(dprcmd.ExitCode(err))
	}
}
