package session

import (
	"context"
	"sort"
)

// Handler runs a command with the whitespace-split arguments that followed its name.
type Handler func(ctx context.Context, args []string) error

// Command is a named handler.
type Command struct {
	Name        string
	Description string
	Run         Handler
}

// Registry maps command names to commands. Lookup is exact and case-sensitive.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates a registry holding cmds.
func NewRegistry(cmds ...*Command) *Registry {
	r := &Registry{commands: make(map[string]*Command, len(cmds))}
	for _, c := range cmds {
		r.commands[c.Name] = c
	}
	return r
}

// Get returns a command by name.
// The second return value indicates whether the name was found.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns the sorted command names.
func (r *Registry) Names() []string {
	cmds := r.List()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}
