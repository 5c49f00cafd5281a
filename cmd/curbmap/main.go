// Command curbmap filters CurbLR curb regulation data by day and time and
// serves the result over HTTP.
package main

import (
	"os"

	"github.com/mesh-intelligence/curbmap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
