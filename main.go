package main

import "github.com/shandysiswandi/contactrelay/internal/cli"

func main() {
	cli.Execute()
}
