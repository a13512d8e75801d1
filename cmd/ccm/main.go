package main

import "github.com/strrl/claude-config-manager/cmd/ccm/commands"

func main() {
	commands.Execute()
}
