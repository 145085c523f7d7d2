package main

import "table-pack-maker/cmd"

func main() {
	cmd.Execute()
}
