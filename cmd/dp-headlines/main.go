package main

import (
	"os"

	"github.com/ecooper/dp-headlines/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}
