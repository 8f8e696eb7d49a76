// main is the entry point of the quickstats CLI.
package main

import (
	"github.com/huangsam/quickstats/cmd"
	"github.com/huangsam/quickstats/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("quickstats", err)
	}
}
