package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-delve/dwarfdis/cmd/dwarfdis/cmds"
	"github.com/go-delve/dwarfdis/pkg/logflags"
	"github.com/go-delve/dwarfdis/pkg/version"
)

// Build is the git sha of this binaries build.
var Build string

func main() {
	if Build != "" {
		version.DwarfdisVersion.Build = Build
	}
	err := cmds.New().Execute()
	logflags.Close()
	if err != nil {
		if !errors.Is(err, cmds.ErrFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
