package main

import (
	"github.com/mchmarny/cadrisk/pkg/cli"
)

func main() {
	cli.Execute()
}
