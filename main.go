package main

import "github.com/dotcommander/bananaq/cmd"

func main() {
	cmd.Execute()
}
