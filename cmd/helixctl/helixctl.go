package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/kiosk404/helix/internal/helixctl/cmd"
)

func main() {
	rand.New(rand.NewSource(time.Now().UnixNano()))

	command := cmd.NewDefaultHelixCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
