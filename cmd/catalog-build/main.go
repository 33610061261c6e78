// Command catalog-build merges the frequency list with the dictionary dump
// and publishes the resulting catalog to Postgres. It is intended to be run
// offline, not as part of the server.
//
// Flags:
//
//	--config   path to the YAML config file (default: CONFIG_PATH or ./config.yaml)
//	--dry-run  build without writing to the database
//	--out      also write the catalog as JSON to this file
//	--no-db    skip publishing entirely
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/spanish-vocab/internal/app"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	dryRunFlag := flag.Bool("dry-run", false, "build without writing to the database")
	outFlag := flag.String("out", "", "write the catalog as JSON to this file")
	noDBFlag := flag.Bool("no-db", false, "do not publish to the database")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := app.RunBuild(ctx, app.BuildOptions{
		ConfigPath: *configFlag,
		DryRun:     *dryRunFlag,
		Out:        *outFlag,
		NoDB:       *noDBFlag,
	})
	if err != nil {
		stop()
		cancel()
		log.Fatalf("catalog-build: %v", err)
	}
}
