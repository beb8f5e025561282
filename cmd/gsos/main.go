package main

import (
	"os"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
