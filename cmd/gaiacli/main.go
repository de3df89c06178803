package main

import (
	"context"
	"os"
)

func main() {
	rootCmd := NewRootCmd()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
