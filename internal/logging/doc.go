// Package logging wires log/slog with the handlers vodub uses: a compact
// console handler for interactive runs and a JSON handler for machine
// consumption. Stage names travel in the context so every stage log line
// carries its origin without each call site repeating it.
package logging
