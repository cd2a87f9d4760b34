// Package main is the entry point for the tabchart CLI.
package main

import (
	"github.com/huangsam/tabchart/cmd"
	"github.com/huangsam/tabchart/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run tabchart", err)
	}
}
