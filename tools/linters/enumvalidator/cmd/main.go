package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"leados.app/inbox/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
