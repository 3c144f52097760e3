package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	var err = Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
