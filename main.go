package main

import (
	"os"

	"github.com/expki/go-colorquant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
