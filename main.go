package main

import (
	"os"

	"github.com/go-spring-projects/website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
