package main

import "github.com/cminusc/compiler/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
