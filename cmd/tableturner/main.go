package main

import (
	"fmt"
	"os"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
