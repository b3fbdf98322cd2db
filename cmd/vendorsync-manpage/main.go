package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/vendorsync/cmd/vendorsync"
)

func main() {
	rootCmd := vendorsync.NewRootCmd()

	err := doc.GenMan(rootCmd, vendorsync.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
