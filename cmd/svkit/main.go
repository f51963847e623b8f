// Command svkit lints SystemVerilog sources and propagates includes.
package main

import (
	"os"

	"github.com/leapstack-labs/svkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
