// Package main is the entry point for the visitor management CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/kinjal-s-patel/visitor-management-system/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
