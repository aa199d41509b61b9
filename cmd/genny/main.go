package main

import "github.com/mvp-joe/genny/internal/cli"

func main() {
	cli.Execute()
}
