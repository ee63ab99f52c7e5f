package main

import (
	"github.com/daleth-lang/dalethls/internal/cli"
)

func main() {
	cli.Execute()
}
