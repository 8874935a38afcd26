package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	dash "github.com/iwtcode/vehicleDash"
	"github.com/iwtcode/vehicleDash/internal/display"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("./.env"); err != nil {
		log.Printf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}

	cfg := dash.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []dash.Option
	var term *display.Terminal
	if cfg.UI == dash.UITerminal {
		term = display.NewTerminal()
		opts = append(opts, dash.WithObserver(term))
	}

	client, err := dash.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create dashboard client: %v", err)
	}
	defer client.Close()

	if term == nil {
		client.Slots().Attach(display.NewLogSurface(client.Logger()))
	} else {
		go func() {
			if err := term.Run(); err != nil {
				client.Logger().Error("Terminal display failed", "error", err)
			}
			// экран закрыт пользователем
			stop()
		}()
		defer term.Stop()
	}

	if err := client.Run(ctx); err != nil {
		client.Logger().Error("Dashboard client stopped with error", "error", err)
		os.Exit(1)
	}
}
