package main

import (
	"os"

	"objcunused/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
