package main

import "github.com/sideline-dev/sideline/internal/cli"

func main() {
	cli.Execute()
}
