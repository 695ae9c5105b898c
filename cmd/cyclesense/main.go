package main

import "github.com/terraincognita07/cyclesense/internal/cli"

func main() {
	cli.Execute()
}
