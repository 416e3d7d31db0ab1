package main

import "github.com/OpenTraceLab/OpenTraceGerber/cmd/otg/cmd"

func main() {
	cmd.Execute()
}
