package main

import (
	"os"

	"github.com/idsia/crema-analysis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
