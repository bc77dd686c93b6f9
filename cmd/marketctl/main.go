// Package main is the entry point for the marketctl CLI client.
package main

import (
	"github.com/junseo/marketctl/cmd/marketctl/cmd"
)

func main() {
	cmd.Execute()
}
