// ScribeLog - Scribe Log Parsing Tool
//
// ScribeLog is a batch tool that parses the Scribe vendor log format into
// structured records, with cross-file merging, summaries, and webhook
// forwarding.
package main

import (
	"os"

	"github.com/scribetools/scribelog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
