// Package main generates the mws CLI reference from the cobra command tree,
// as markdown pages or as man pages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/amazon-mws/cmd/mws/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated pages")
	format := flag.String("format", "markdown", "page format (markdown, man)")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := generate(root, *format, *output); err != nil {
		log.Fatalf("generating docs: %v", err)
	}

	fmt.Printf("CLI %s docs generated in %s/\n", *format, *output)
}

func generate(root *cobra.Command, format, dir string) error {
	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "MWS",
			Section: "1",
			Source:  "mws " + cmd.Version,
			Manual:  "Amazon MWS CLI",
		}, dir)
	default:
		return fmt.Errorf("unknown format %q: must be markdown or man", format)
	}
}
