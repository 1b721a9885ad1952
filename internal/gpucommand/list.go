package gpucommand

// List queues commands until the renderer uploads them.
type List struct {
	commands []*Command
}

func NewList() *List {
	return &List{
		commands: make([]*Command, 0),
	}
}

// Add appends cmd. The list takes ownership; cmd must not be pushed to afterwards.
func (l *List) Add(cmd *Command) {
	l.commands = append(l.commands, cmd)
}

func (l *List) Len() int {
	return len(l.commands)
}

// PopCommands removes and returns up to max commands in insertion order.
// A max of zero or less pops everything.
func (l *List) PopCommands(max int) []*Command {
	n := len(l.commands)
	if max > 0 && max < n {
		n = max
	}
	out := make([]*Command, n)
	copy(out, l.commands[:n])
	rest := copy(l.commands, l.commands[n:])
	clear(l.commands[rest:])
	l.commands = l.commands[:rest]
	return out
}
