// Package view implements the feed loader used by the web pages: fetch a
// JSON feed from the API, render one HTML fragment per entry into named
// containers, and fall back to an inline error message when the fetch or
// decode fails. Each container settles in exactly one of two states, never
// stuck on the loading placeholder.
package view

import (
	"html/template"
	"strings"
)

// State describes the lifecycle of a container's content.
type State int

const (
	// StateLoading is the initial placeholder state shown before the feed
	// request settles.
	StateLoading State = iota

	// StatePopulated means the container holds rendered entries (possibly
	// zero for an empty feed).
	StatePopulated

	// StateError means the container holds a single inline error message.
	StateError
)

// Container is a named render region of a page. The loader owns it until
// the page composes its HTML; it is not safe for concurrent use.
type Container struct {
	id     string
	state  State
	parts  []template.HTML
	errMsg string
}

// NewContainer creates a container in the loading state.
func NewContainer(id string) *Container {
	return &Container{id: id, state: StateLoading}
}

// ID returns the container's element identifier.
func (c *Container) ID() string { return c.id }

// State returns the container's current lifecycle state.
func (c *Container) State() State { return c.state }

// SetLoading resets the container to the loading placeholder.
func (c *Container) SetLoading() {
	c.state = StateLoading
	c.parts = nil
	c.errMsg = ""
}

// Clear empties the container and marks it populated. The loader calls this
// only after the response body decoded successfully, so a parse failure never
// leaves a half-cleared region behind.
func (c *Container) Clear() {
	c.state = StatePopulated
	c.parts = c.parts[:0]
	c.errMsg = ""
}

// Append adds one rendered fragment. Entries keep append order.
func (c *Container) Append(frag template.HTML) {
	c.parts = append(c.parts, frag)
}

// Fail replaces the container's content with a single error message
// embedding the failure description.
func (c *Container) Fail(desc string) {
	c.state = StateError
	c.parts = nil
	c.errMsg = desc
}

// settle converts a container still in the loading state into an empty
// populated one. The loader invokes it after a successful render pass so the
// loading placeholder can never survive settlement.
func (c *Container) settle() {
	if c.state == StateLoading {
		c.Clear()
	}
}

// Len returns the number of rendered entries.
func (c *Container) Len() int { return len(c.parts) }

// HTML returns the container's current content as a markup-safe string.
func (c *Container) HTML() template.HTML {
	switch c.state {
	case StateLoading:
		return loadingFragment()
	case StateError:
		return errorFragment(c.errMsg)
	default:
		var b strings.Builder
		for _, p := range c.parts {
			b.WriteString(string(p))
			b.WriteByte('\n')
		}
		return template.HTML(b.String()) // parts are already escaped fragments
	}
}
