package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/lemmego/appkit/app"
)

// terminalHost implements app.Host with huh forms and plain output
type terminalHost struct {
	out io.Writer
}

func newTerminalHost() *terminalHost {
	return &terminalHost{out: os.Stdout}
}

func (h *terminalHost) AskPath(title string, fileTypes []app.FileType, save bool) (string, error) {
	var path string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(describeFileTypes(fileTypes)).
				Value(&path).
				Validate(validPath(fileTypes)),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(path), nil
}

func (h *terminalHost) ShowInfo(title, message string) error {
	_, err := fmt.Fprintf(h.out, "%s\n\n%s\n\n", title, message)
	return err
}

func describeFileTypes(fileTypes []app.FileType) string {
	parts := make([]string, 0, len(fileTypes))
	for _, ft := range fileTypes {
		parts = append(parts, fmt.Sprintf("%s (%s)", ft.Description, ft.Pattern))
	}
	return strings.Join(parts, ", ")
}

// validPath accepts an empty answer (cancel), a path without extension or a
// path matching one of the file types.
func validPath(fileTypes []app.FileType) func(string) error {
	return func(input string) error {
		input = strings.TrimSpace(input)
		ext := filepath.Ext(input)
		if input == "" || ext == "" {
			return nil
		}
		for _, ft := range fileTypes {
			if strings.EqualFold(ft.Ext(), ext) {
				return nil
			}
		}
		return fmt.Errorf("unsupported file type %s", ext)
	}
}
