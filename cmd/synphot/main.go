package main

import "github.com/RMahshie/synphot/internal/cli"

func main() {
	cli.Execute()
}
