// Package view provides terminal output helpers.
package view

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Renderer writes human-readable messages to a single writer.
type Renderer struct {
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a renderer writing to w. A nil w means stderr, which
// keeps stdout free for machine-readable output.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		writer:  w,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// Writer returns the output writer.
func (r *Renderer) Writer() io.Writer {
	return r.writer
}

// Notice prints an informational progress message.
func (r *Renderer) Notice(format string, args ...interface{}) {
	dim := r.color(color.Faint)
	_, _ = dim.Fprintf(r.writer, format+"\n", args...)
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	bold := r.color(color.Bold)
	_, _ = bold.Fprintf(r.writer, "%-12s", key+":")
	if value == "" {
		dim := r.color(color.Faint)
		_, _ = dim.Fprintln(r.writer, "-")
		return
	}
	fmt.Fprintln(r.writer, value)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := r.color(color.FgGreen)
	_, _ = green.Fprintln(r.writer, "✓ "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := r.color(color.FgRed)
	_, _ = red.Fprintln(r.writer, "✗ "+msg)
}

// color returns a printer for attrs that stays plain when the renderer was
// created without color, whatever the global setting says.
func (r *Renderer) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.noColor {
		c.DisableColor()
	}
	return c
}
