package main

import "github.com/saltyorg/branchver/cmd"

func main() {
	cmd.Execute()
}
