// vibecraftctl is the operator CLI for the vibecraftd daemon.
package main

import (
	"os"

	"github.com/kiosk404/vibecraft/internal/vibecraftctl/cmd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	command := cmd.NewDefaultVibeCraftCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
