package entities

import "github.com/spf13/cobra"

// ControllerBind holds the Cobra metadata of a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entry point bound to a sub-command.
type Controller interface {
	GetBind() ControllerBind
	AddFlags(command *cobra.Command)
	Execute(command *cobra.Command, arguments []string) error
}
