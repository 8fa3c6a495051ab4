// Package main is the entry point for the rental-manager CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/rental-manager/cmd/rental-manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
