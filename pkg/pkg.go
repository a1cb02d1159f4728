//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

//go:embed VERSION
var version string

// Version returns the embedded release version, trimmed of whitespace.
func Version() string { return strings.TrimSpace(version) }

// SemVer parses [Version]. A malformed version file parses as 0.0.0 so that
// version constraints fail closed rather than panicking.
var SemVer = sync.OnceValue(func() *semver.Version {
	v, err := semver.NewVersion(Version())
	if err != nil {
		return semver.New(0, 0, 0, "", "")
	}

	return v
})

const (
	// Name is the command name. It also names the configuration directory.
	Name = "quark"
	// Description summarizes the command in help output.
	Description = "Compile Markdown documents with embedded function calls"
)

// AuthorInfo identifies a project author.
type AuthorInfo struct {
	Name  string
	Email string
}

var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
