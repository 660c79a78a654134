package main

import "github.com/mouse-blink/gorald/cmd"

func main() {
	cmd.Execute()
}
