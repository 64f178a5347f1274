package main

import (
	"os"

	"github.com/msto63/sccalc/cmd/sccalc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
