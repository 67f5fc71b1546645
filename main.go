package main

import (
	"os"

	"github.com/Glider2355/table-mutator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
