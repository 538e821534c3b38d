package main

import (
	"os"

	"github.com/taskwire/taskwire/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
