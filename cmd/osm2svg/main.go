package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	cmd := newRootCmd(afero.NewOsFs())
	cmd.SetArgs(reorderArgs(cmd.Flags(), os.Args[1:]))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
