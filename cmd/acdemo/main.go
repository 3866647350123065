package main

import (
	"os"

	"github.com/open-cli-collective/cobra-autocomplete/internal/cmd/root"
)

func main() {
	os.Exit(root.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
