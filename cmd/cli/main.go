package main

import (
	"github.com/mazekit/mazegame-go/internal/cli"
)

func main() {
	cli.Execute()
}
