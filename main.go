package main

import "github.com/vibast-solutions/ms-go-internship/cmd"

func main() {
	cmd.Execute()
}
