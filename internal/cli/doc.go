// Package cli defines the Cobra root command of putup. The command takes a
// single PROJECT argument; flags come from the option resolver and from the
// builtin extensions. The command only wires collaborators together and
// formats output: option resolution, the action pipeline and file
// generation live in their own packages.
package cli
