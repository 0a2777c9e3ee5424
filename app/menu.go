package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

var ErrInvalidMenu = errors.New("invalid menu")

// MenuItem is either a command with an Action or a cascade with a Submenu.
type MenuItem struct {
	Label   string
	Action  func() error
	Submenu Menu
}

// Menu is an ordered list of menu items
type Menu []MenuItem

// Command returns a menu item running action
func Command(label string, action func() error) MenuItem {
	return MenuItem{Label: label, Action: action}
}

// Cascade returns a menu item opening items
func Cascade(label string, items ...MenuItem) MenuItem {
	return MenuItem{Label: label, Submenu: items}
}

// MenuID turns a label such as "Save As..." into "save_as".
func MenuID(label string) string {
	label = strings.TrimRight(strings.TrimSpace(label), ".")
	return strcase.ToSnake(label)
}

// IsCascade reports whether the item opens a submenu
func (i MenuItem) IsCascade() bool {
	return len(i.Submenu) > 0
}

// Validate checks that every item has a label and exactly one of Action or Submenu.
func (m Menu) Validate() error {
	for _, item := range m {
		if item.Label == "" {
			return fmt.Errorf("%w: item without label", ErrInvalidMenu)
		}
		switch {
		case item.Action != nil && item.IsCascade():
			return fmt.Errorf("%w: %q has both an action and a submenu", ErrInvalidMenu, item.Label)
		case item.Action == nil && !item.IsCascade():
			return fmt.Errorf("%w: %q has neither an action nor a submenu", ErrInvalidMenu, item.Label)
		case item.IsCascade():
			if err := item.Submenu.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find looks up an item by its dotted id path, e.g. "file.save_as".
func (m Menu) Find(path string) (MenuItem, bool) {
	head, rest, nested := strings.Cut(path, ".")
	for _, item := range m {
		if MenuID(item.Label) != head {
			continue
		}
		if !nested {
			return item, true
		}
		return item.Submenu.Find(rest)
	}
	return MenuItem{}, false
}

// Labels returns the labels of the top level items
func (m Menu) Labels() []string {
	labels := make([]string, 0, len(m))
	for _, item := range m {
		labels = append(labels, item.Label)
	}
	return labels
}

// Invoke runs the action found at path
func (m Menu) Invoke(path string) error {
	item, ok := m.Find(path)
	if !ok {
		return fmt.Errorf("%w: no item %q", ErrInvalidMenu, path)
	}
	if item.Action == nil {
		return fmt.Errorf("%w: %q is a cascade", ErrInvalidMenu, path)
	}
	return item.Action()
}
