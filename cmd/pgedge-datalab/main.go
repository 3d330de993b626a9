// Package main is the entry point for pgedge-datalab.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-datalab/internal/cli"

	// Register population units
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/ecommerce"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/exchange"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/lodging"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/mobility"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/streaming"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
