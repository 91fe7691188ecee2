package main

import (
	"os"

	"github.com/kroma-labs/stripe-sentinel/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
