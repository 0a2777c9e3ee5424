package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AboutInfo is shown by Help | About...
type AboutInfo struct {
	Name      string
	Version   string
	Copyright string
	Author    string
	License   string
	Source    string
}

// DefaultAbout returns the placeholder about information
func DefaultAbout() AboutInfo {
	return AboutInfo{
		Name:      "my app",
		Version:   "X.X",
		Copyright: "20XX",
		Author:    "John Q. Public",
		License:   "MIT License",
		Source:    "github url",
	}
}

// WithDefaults fills empty fields from DefaultAbout
func (a AboutInfo) WithDefaults() AboutInfo {
	d := DefaultAbout()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&a.Name, d.Name)
	fill(&a.Version, d.Version)
	fill(&a.Copyright, d.Copyright)
	fill(&a.Author, d.Author)
	fill(&a.License, d.License)
	fill(&a.Source, d.Source)
	return a
}

func (a AboutInfo) Title() string {
	return "About " + cases.Title(language.English).String(a.Name)
}

func (a AboutInfo) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", a.Name)
	fmt.Fprintf(&b, "version %s\n", a.Version)
	fmt.Fprintf(&b, "Copyright (c) %s by %s\n", a.Copyright, a.Author)
	fmt.Fprintf(&b, "Licensed under the %s\n", a.License)
	fmt.Fprintf(&b, "Source: %s", a.Source)
	return b.String()
}

// FileType describes one entry of the open/save file type list, e.g. {"JSON", "*.json"}.
type FileType struct {
	Description string
	Pattern     string
}

// Ext returns the extension of the pattern, "*.json" gives ".json"
func (f FileType) Ext() string {
	return filepath.Ext(f.Pattern)
}
