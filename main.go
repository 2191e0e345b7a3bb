package main

import "github.com/robalobadob/wordgrid/cmd"

func main() {
	cmd.Execute()
}
