package ports

// OutputPort renders lines to the operator terminal. Implementations must
// flush eagerly: the packet switch forwards IO as it arrives.
type OutputPort interface {
	Print(line string)
	Printf(format string, args ...any)
}
