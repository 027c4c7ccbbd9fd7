package main

import "patter/cmd"

func main() {
	cmd.Execute()
}
