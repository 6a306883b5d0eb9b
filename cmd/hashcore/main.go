package main

import (
	"os"

	"massnet.org/hashcore/cmd/hashcore/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
