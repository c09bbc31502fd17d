package session

// Command is a discrete request delivered to a Controller.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	Rotate
	// Fall is the timer-driven step. Hosts normally call Step directly.
	Fall

	commandCount
)

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case SoftDrop:
		return "SoftDrop"
	case Rotate:
		return "Rotate"
	case Fall:
		return "Fall"
	default:
		return "Unknown"
	}
}

// Commands buffers input gathered during one frame so it can be applied to
// the controller in order at a single point.
type Commands struct {
	queued []Command
	defers []func()
}

// NewCommands creates an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Push queues a command.
func (q *Commands) Push(cmd Command) {
	q.queued = append(q.queued, cmd)
}

// Defer queues a function to run after the queued commands are applied.
func (q *Commands) Defer(fn func()) {
	q.defers = append(q.defers, fn)
}

// Len returns the number of queued commands.
func (q *Commands) Len() int {
	return len(q.queued)
}

// Flush applies every queued command to c, runs deferred functions and
// resets the buffer. It returns how many commands took effect.
func (q *Commands) Flush(c *Controller) int {
	applied := 0
	for _, cmd := range q.queued {
		if c.Apply(cmd) {
			applied++
		}
	}

	for _, fn := range q.defers {
		fn()
	}

	q.queued = q.queued[:0]
	q.defers = q.defers[:0]
	return applied
}
