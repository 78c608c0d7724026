package main

import (
	"github.com/skylark-qa/skylark/cmd"
)

// Version is the current version of skylark
// It is set at build time by using -ldflags "-X main.version=x.x.x"
var version string

func main() {
	cmd.Execute(version)
}
