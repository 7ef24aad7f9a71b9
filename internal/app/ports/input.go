package ports

// InputPort produces operator input lines. The producer must never touch
// network state; it only feeds the session loop.
type InputPort interface {
	Start()
	// Lines yields trimmed input lines; the channel closes on terminal EOF.
	Lines() <-chan string
	// Stop asks the producer to finish; the returned channel closes once
	// it has.
	Stop() <-chan struct{}
}
