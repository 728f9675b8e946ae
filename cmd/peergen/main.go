package main

import (
	"fmt"
	"os"

	"github.com/teranos/peergen/cmd/peergen/cmd"
	"github.com/teranos/peergen/logger"
)

func main() {
	err := cmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
