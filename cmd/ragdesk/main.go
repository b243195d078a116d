// Command ragdesk is a terminal console for a retrieval-augmented document store.
package main

import (
	"os"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
