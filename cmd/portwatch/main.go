package main

import "github.com/daas/portwatch/internal/cli"

func main() {
	cli.Execute()
}
