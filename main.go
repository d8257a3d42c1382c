package main

import (
	"os"

	"github.com/LeeJaeHaeng/parking-pass/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
