// Package manifest reads and writes the metadata file recorded at the root
// of every generated project. The file names the generator version, the
// project options that shaped it and the extensions that were active, so
// that a later update can regenerate the same tree. Files are validated
// against an embedded JSON schema before use.
package manifest
