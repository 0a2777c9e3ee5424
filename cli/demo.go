package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lemmego/appkit/app"
	"github.com/lemmego/appkit/cmder"
	"github.com/lemmego/appkit/config"
	"github.com/lemmego/appkit/demo"
)

var openFile string

var demoFileTypes = []app.FileType{
	{Description: "JSON", Pattern: "*.json"},
	{Description: "YAML", Pattern: "*.yaml"},
	{Description: "TOML", Pattern: "*.toml"},
}

type menuEntry struct {
	label string
	path  string
}

// flattenMenu lists the commands of a menu as "File > Save As..." entries
func flattenMenu(menu app.Menu, labelPrefix, pathPrefix string) []menuEntry {
	var entries []menuEntry
	for _, item := range menu {
		label := labelPrefix + item.Label
		path := pathPrefix + app.MenuID(item.Label)
		if item.IsCascade() {
			entries = append(entries, flattenMenu(item.Submenu, label+" > ", path+".")...)
			continue
		}
		entries = append(entries, menuEntry{label: label, path: path})
	}
	return entries
}

func aboutInfo() app.AboutInfo {
	return app.AboutInfo{
		Name:    config.String("app.name", "Demo Application"),
		Version: config.String("app.version", "X.X"),
	}
}

func newDemoApp(f *demo.Factory) (*app.Application, error) {
	return app.New(f,
		app.WithTitle("Demo Application"),
		app.WithAbout(aboutInfo()),
		app.WithFileTypes(demoFileTypes...),
		app.WithHost(newTerminalHost()),
	)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the demo application",
	Long:  `Run the demo application: a button toggling between Start and Stop that counts its clicks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := demo.NewFactory()
		f.OnStatus = func(status string) {
			fmt.Fprintln(cmd.OutOrStdout(), status)
		}

		a, err := newDemoApp(f)
		if err != nil {
			return err
		}
		defer a.Exit()

		if openFile != "" {
			if err := a.OpenFile(openFile); err != nil {
				return err
			}
		}

		entries := flattenMenu(a.Menu(), "", "")
		for !a.Exited() {
			items := []string{f.Widget().Label()}
			for _, e := range entries {
				items = append(items, e.label)
			}

			idx, _, err := cmder.Select(a.Title(), items)
			if errors.Is(err, cmder.ErrInterrupted) {
				return a.Exit()
			}
			if err != nil {
				return err
			}

			if idx == 0 {
				err = f.Widget().Click()
			} else {
				err = a.Menu().Invoke(entries[idx-1].path)
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), strings.TrimSpace(err.Error()))
			}
		}
		return nil
	},
}

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show the about information",
	RunE: func(cmd *cobra.Command, args []string) error {
		about := aboutInfo().WithDefaults()
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", about.Title(), about.Message())
		return err
	},
}

func init() {
	demoCmd.Flags().StringVar(&openFile, "open", "", "model file to open at start")
}
