package main

import (
	"os"

	"github.com/kbukum/faultline/cmd/faultline/commands"
)

func main() {
	os.Exit(commands.Execute())
}
