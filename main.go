package main

import "github.com/0x09/go-hfsplus/cmd"

func main() {
	cmd.Execute()
}
