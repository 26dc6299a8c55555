package main

import "github.com/pumppoints/pumppoints/internal/cli"

func main() {
	cli.Execute()
}
