package main

import (
	"os"

	"github.com/Yossy4131/LT/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
