package main

import (
	"os"

	"github.com/taskboard/taskboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
