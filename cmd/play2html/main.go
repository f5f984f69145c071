// Command play2html converts drama XML documents to HTML and other formats.
package main

import (
	"os"

	"github.com/roboco-io/play2html/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
