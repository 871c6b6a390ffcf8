package main

import "github.com/theirongolddev/stratsim/cmd"

func main() {
	cmd.Execute()
}
