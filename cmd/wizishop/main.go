// Package main is the entry point for the wizishop CLI.
package main

import (
	"github.com/JWebCreation/wizishop-sdk/cmd/wizishop/cmd"
)

func main() {
	cmd.Execute()
}
