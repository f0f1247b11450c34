package main

import "github.com/opsintel/dossier-migrate/internal/cli"

func main() {
	cli.Execute()
}
