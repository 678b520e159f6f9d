package main

import (
	"os"

	"github.com/bankrkit/bankr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
