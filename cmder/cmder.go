// Package cmder wraps the interactive terminal prompts used by the CLI.
package cmder

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
)

// ErrInterrupted is returned when the user presses Ctrl+C or Ctrl+D
var ErrInterrupted = errors.New("prompt interrupted")

type ValidateFunc func(string) error

// IO lets tests and callers redirect the prompts. Nil fields use the terminal.
type IO struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func wrap(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrInterrupted
	}
	return err
}

// Select asks the user to pick one of items and returns its index and label
func Select(label string, items []string, rw ...IO) (int, string, error) {
	if len(items) == 0 {
		return -1, "", fmt.Errorf("select %q: no items", label)
	}

	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}
	if len(rw) > 0 {
		prompt.Stdin, prompt.Stdout = rw[0].Stdin, rw[0].Stdout
	}

	idx, result, err := prompt.Run()
	if err != nil {
		return -1, "", wrap(err)
	}
	return idx, result, nil
}

// Ask prompts for free text, validated by validator when it is not nil
func Ask(question string, validator ValidateFunc, rw ...IO) (string, error) {
	if validator == nil {
		validator = func(string) error { return nil }
	}

	prompt := promptui.Prompt{
		Label:    question,
		Validate: promptui.ValidateFunc(validator),
	}
	if len(rw) > 0 {
		prompt.Stdin, prompt.Stdout = rw[0].Stdin, rw[0].Stdout
	}

	res, err := prompt.Run()
	if err != nil {
		return "", wrap(err)
	}
	return res, nil
}

// Confirm asks a yes/no question. defaultVal must be one of y, Y, n, N.
func Confirm(question string, defaultVal rune, rw ...IO) (bool, error) {
	if defaultVal != 'y' && defaultVal != 'Y' && defaultVal != 'n' && defaultVal != 'N' {
		panic("defaultVal argument must be either of y, Y, n, N")
	}

	labelSuffix := " (y/N)"
	if defaultVal == 'y' || defaultVal == 'Y' {
		labelSuffix = " (Y/n)"
	}

	res, err := Ask(question+labelSuffix, YesNo, rw...)
	if err != nil {
		return false, err
	}
	if res == "" {
		res = string(defaultVal)
	}
	return res == "y" || res == "Y", nil
}

// YesNo accepts an empty answer or one of y, Y, n, N
func YesNo(s string) error {
	if s != "" && s != "y" && s != "Y" && s != "n" && s != "N" {
		return errors.New("input must be either of y, Y, n, N")
	}
	return nil
}
