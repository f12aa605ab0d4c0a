// Command line tool for inspecting indexing expressions and epoch values.
package main

import (
	"os"

	"github.com/robert-malhotra/go-cdf/cmd/cdftool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
