package main

import "wrapgen/cmd"

func main() {
	cmd.Execute()
}
