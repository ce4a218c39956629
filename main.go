package main

import (
	"context"

	root "github.com/JulienBalestra/binomial/cmd"
	"github.com/JulienBalestra/dry/pkg/exit"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	rootCommand := root.NewRootCommand(ctx)
	err := rootCommand.Execute()
	cancel()
	exit.Exit(err)
}
