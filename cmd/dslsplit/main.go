package main

import "dslsplit/internal/cli"

func main() {
	cli.Execute()
}
