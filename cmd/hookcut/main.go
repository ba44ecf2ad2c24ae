package main

import "github.com/hookcut/hookcut/internal/cli"

func main() {
	cli.Main()
}
