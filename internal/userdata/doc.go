// Package userdata locates the per-user configuration directory and the
// argument-file profiles stored in it. It resolves the directory from the
// platform environment, selects the active profile, and saves new profiles.
package userdata
