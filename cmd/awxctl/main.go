package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/goawx/internal/client/cli"
)

func main() {
	// Ctrl+C прерывает текущий HTTP запрос; незакоммиченное остается в staging
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
