package main

import "github.com/FilipRuta/sight-readia/cmd"

func main() {
	cmd.Execute()
}
