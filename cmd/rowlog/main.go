// Command rowlog appends typed rows to CSV logs and exports or archives
// finished logs.
package main

import (
	"fmt"
	"os"

	"github.com/rowlog/rowlog/pkg/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "rowlog: %v\n", err)
		os.Exit(1)
	}
}
