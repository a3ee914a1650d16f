package entity

import "github.com/spf13/cobra"

type CommandRequest struct {
	Cmd  *cobra.Command
	Args []string
}

// Arg returns the i-th positional argument or "".
func (r *CommandRequest) Arg(i int) string {
	if i < len(r.Args) {
		return r.Args[i]
	}
	return ""
}

type CobraFunction func(cmd *cobra.Command, args []string) error
