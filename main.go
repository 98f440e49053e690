package main

import (
	"os"

	"github.com/drpaneas/repolens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
