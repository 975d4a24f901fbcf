package main

import (
	"github.com/kognitoai/cohort/cmd/cohort/command"
)

func main() {
	command.Execute()
}
