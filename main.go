package main

import "github.com/nbterm/nbterm/cmd"

func main() {
	cmd.Execute()
}
