package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/translation-console/internal/config"
	"github.com/JaimeStill/translation-console/internal/infrastructure"
	"github.com/JaimeStill/translation-console/pkg/apiclient"
)

func main() {
	var (
		dir  = flag.String("config", ".", "Directory holding config.toml and .env")
		base = flag.String("api-url", "", "Backend API base URL (overrides API_URL)")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*dir, *base)
	if err != nil {
		fatal("%v", err)
	}

	client, err := infrastructure.NewClient(&cfg.Client)
	if err != nil {
		fatal("api client init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, client, flag.Args(), os.Stdout, os.Stderr))
}

// loadConfig reads the configuration in dir. A non-empty base takes the
// place of API_URL, so it is validated like any other base URL.
func loadConfig(dir, base string) (*config.Config, error) {
	if base != "" {
		if err := os.Setenv(apiclient.EnvBaseURL, base); err != nil {
			return nil, fmt.Errorf("set %s: %w", apiclient.EnvBaseURL, err)
		}
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config finalize failed: %w", err)
	}

	return cfg, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: console [-config dir] [-api-url url] <command> [args]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "commands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-36s %s\n", c.usage, c.description)
	}
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
