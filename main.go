package main

import "pixshield/cmd"

func main() {
	cmd.Execute()
}
