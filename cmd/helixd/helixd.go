package main

import (
	"math/rand"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/helix/internal/helixd"
)

func main() {
	rand.New(rand.NewSource(time.Now().UTC().UnixNano()))

	helixd.NewApp("helixd").Run()
}
