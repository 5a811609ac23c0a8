package main

import "github.com/jt05610/petri-industry/cmd/petri/cmd"

func main() {
	cmd.Execute()
}
