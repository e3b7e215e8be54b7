package main

import (
	"fmt"
	"log"
	"os"

	"github.com/open-cli-collective/fx/internal/cmd/root"
)

func main() {
	log.SetFlags(0)

	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
