package main

import (
	"github.com/dmaher/campcaster/internal/cli"
)

func main() {
	cli.Execute()
}
