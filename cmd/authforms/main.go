package main

import "github.com/nfrund/authforms/cmd/authforms/cmd"

func main() {
	cmd.Execute()
}
