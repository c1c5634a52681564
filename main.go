package main

import "driprun/cmd"

func main() {
	cmd.Run()
}
