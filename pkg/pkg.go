// Package pkg holds the identity of the schemaflag module: its name,
// description and version.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version of the module embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command name, also used for help text and default
	// configuration paths.
	Name = "schemaflag"
	// Description is a one-line summary used in help output.
	Description = "Build typed configuration instances from command-line flags"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
