package ports

// FilterPort censors outbound operator text before it reaches the wire.
type FilterPort interface {
	Filter(text string) string
	Empty() bool
}
