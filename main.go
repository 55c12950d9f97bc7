package main

import (
	"github.com/vatfree/timecard/cmd/timecard/commands"
)

func main() {
	commands.Execute()
}
