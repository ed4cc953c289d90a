package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ride-estimates/cmd/producer"
	"ride-estimates/cmd/worker"
	"ride-estimates/internal/cli"
)

func main() {
	// quick path for global help
	if len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		cli.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	// parse mode and collect the remaining args for that mode
	mode, svcArgs, err := cli.ParseMode(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	// context cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// run the service specified by the mode flag
	switch mode {

	case cli.ModeWorker:
		fs := flag.NewFlagSet(cli.ModeWorker, flag.ContinueOnError)
		configPath := fs.String("config", "config/config.yaml", "Path to the YAML configuration file")
		prefetch := fs.Int("prefetch", 8, "RabbitMQ prefetch count for the consumer channel")
		maxConc := fs.Int("max-concurrent", 32, "Maximum number of route requests processed at once")
		cli.AttachUsage(fs, cli.ModeWorker)

		if err := fs.Parse(svcArgs); err != nil {
			if err == flag.ErrHelp {
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		if *prefetch <= 0 {
			fmt.Fprintln(os.Stderr, "Error: --prefetch must be > 0")
			fs.Usage()
			os.Exit(2)
		}
		if *maxConc < 1 {
			fmt.Fprintln(os.Stderr, "Error: --max-concurrent must be >= 1")
			fs.Usage()
			os.Exit(2)
		}
		if err := worker.Run(ctx, *configPath, *prefetch, *maxConc); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

	case cli.ModeProducer:
		fs := flag.NewFlagSet(cli.ModeProducer, flag.ContinueOnError)
		configPath := fs.String("config", "config/config.yaml", "Path to the YAML configuration file")
		input := fs.String("input", "data/input.json", "Path to the JSON routes file to publish")
		cli.AttachUsage(fs, cli.ModeProducer)

		if err := fs.Parse(svcArgs); err != nil {
			if err == flag.ErrHelp {
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		if *input == "" {
			fmt.Fprintln(os.Stderr, "Error: --input must not be empty")
			fs.Usage()
			os.Exit(2)
		}
		if err := producer.Run(ctx, *configPath, *input); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

	default:
		// should not happen because ParseMode validates known modes
		fmt.Fprintln(os.Stderr, "Error: unknown mode")
		os.Exit(2)
	}

	// tiny delay to let deferred logs flush on very fast exits
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Millisecond):
	}
}
