package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/rollson/internal/platform/cmd"
	"github.com/louisbranch/rollson/internal/platform/config"
	"github.com/louisbranch/rollson/internal/tools/roller"
)

func main() {
	cfg, err := roller.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceRollOn, func(ctx context.Context) error {
		return roller.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		message, code := roller.Describe(err, cfg.Locale)
		stop()
		config.ExitCodef(code, "roll on: %s", message)
	}
}
