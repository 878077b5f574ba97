package main

import "github.com/hydrocad/hydrocad/cmd"

func main() {
	cmd.Execute()
}
