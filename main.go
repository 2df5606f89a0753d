package main

import "github.com/tools4freee/t4f/internal/cli"

func main() {
	cli.Run()
}
