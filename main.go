package main

import "isoserve/cmd"

func main() {
	cmd.Execute()
}
