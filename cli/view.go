package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lemmego/appkit/app"
	"github.com/lemmego/appkit/help"
)

var viewCmd = &cobra.Command{
	Use:   "view <help-file>",
	Short: "Show a help topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &help.Factory{HelpFile: args[0]}
		a, err := app.New(f,
			app.WithTitle("Help"),
			app.WithMenu(app.Menu{app.Command("Close", func() error { return nil })}),
		)
		if err != nil {
			return err
		}
		defer a.Exit()

		_, err = fmt.Fprintln(cmd.OutOrStdout(), f.Widget().Content())
		return err
	},
}
