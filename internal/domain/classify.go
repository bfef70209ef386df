package domain

// CommandLabel is the binary output of the safe/risky pre-filter.
type CommandLabel string

const (
	LabelSafe  CommandLabel = "safe"
	LabelRisky CommandLabel = "risky"
)
