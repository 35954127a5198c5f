//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"

	"github.com/go-delve/dwarfdis/cmd/dwarfdis/cmds"
)

const defaultUsageDir = "./Documentation/usage"

func main() {
	usageDir := defaultUsageDir
	if len(os.Args) > 1 {
		usageDir = os.Args[1]
	}
	if err := os.MkdirAll(usageDir, 0755); err != nil {
		log.Fatal(err)
	}
	root := cmds.New()
	if err := doc.GenMarkdownTree(root, usageDir); err != nil {
		log.Fatal(err)
	}
	// GenMarkdownTree ignores additional help topic commands, so we have to do this manually
	logCmd, _, err := root.Find([]string{"log"})
	if err != nil {
		log.Fatal(err)
	}
	if err := doc.GenMarkdownTree(logCmd, usageDir); err != nil {
		log.Fatal(err)
	}
	fh, err := os.OpenFile(filepath.Join(usageDir, "dwarfdis.md"), os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		log.Fatalf("appending to dwarfdis.md: %v", err)
	}
	defer fh.Close()
	fmt.Fprintln(fh, "* [dwarfdis log](dwarfdis_log.md)\t - Help about logging flags")
}
