// Package extensions holds the compiled-in extensions of the generator.
// Each extension contributes command-line flags and, when activated, hook
// operations that splice its actions into the plan.
package extensions
