package models

// DatasetRow is one labeled example after schema unification. Label is
// kept as the raw string form; mapping to a canonical sentiment happens
// later and rows that fail the mapping are dropped, not defaulted.
type DatasetRow struct {
	Comment string
	Label   string
}

// LoadStats records what the loaders did, for auditability.
type LoadStats struct {
	TwitterRows   int
	RedditRows    int
	UsedFallback  bool
	SkippedBadRow int
}
