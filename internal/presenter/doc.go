// Package presenter turns catalog records into the display lines shown by
// the CLI. It is the only place that knows about labels, truncation and
// "N/A" placeholders; the core types stay presentation-free.
package presenter
