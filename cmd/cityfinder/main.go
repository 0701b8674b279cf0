// Command cityfinder searches a city dataset by name and distance.
package main

import (
	"os"

	"github.com/custodia-labs/cityfinder/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
