// Command bindcheck runs binding manifests and inspects date patterns.
package main

import (
	"os"

	"github.com/go-drift/bind/cmd/bindcheck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
