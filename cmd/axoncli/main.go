package main

import (
	"github.com/robotalks/axon/pkg/cli/sh"
	"github.com/robotalks/axon/pkg/env"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
