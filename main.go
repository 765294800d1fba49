package main

import (
	"schemer/cmd"

	_ "github.com/microsoft/go-mssqldb"

	_ "schemer/migrations"
)

func main() {
	cmd.Execute()
}
