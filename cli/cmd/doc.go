// Package cmd implements the quark subcommands: compile, tokens, ast, repl
// and init.
//
// Commands receive a [context.Context] carrying the parsed [kong.Context]
// (see [WithContext]) and read their document through a [Source].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
