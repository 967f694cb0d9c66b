package model

// Globals contains global flags for the CLI.
type Globals struct {
	Version VersionFlag `name:"version" help:"Print version information and quit"`
}
