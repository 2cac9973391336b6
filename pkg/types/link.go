package types

// DesiredLink declares that every destination should be a symlink to Source
type DesiredLink struct {
	Source       string
	Destinations []string
}

// Group is a named, ordered set of desired links
type Group struct {
	Name  string
	Links []DesiredLink
}
