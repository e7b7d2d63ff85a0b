// Package main generates CLI reference documentation from the wizishop
// command tree, as markdown and optionally as man pages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/JWebCreation/wizishop-sdk/cmd/wizishop/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	man := flag.String("man", "", "also write man pages to this directory")
	flag.Parse()

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := generate(root, *output, *man); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}

func generate(root *cobra.Command, mdDir, manDir string) error {
	if err := os.MkdirAll(mdDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := doc.GenMarkdownTree(root, mdDir); err != nil {
		return fmt.Errorf("generating docs: %w", err)
	}

	if manDir == "" {
		return nil
	}
	if err := os.MkdirAll(manDir, 0o750); err != nil {
		return fmt.Errorf("creating man directory: %w", err)
	}
	header := &doc.GenManHeader{Title: "WIZISHOP", Section: "1", Source: "wizishop-sdk"}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		return fmt.Errorf("generating man pages: %w", err)
	}
	return nil
}
