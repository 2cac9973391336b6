// Package types defines the core types and interfaces used throughout dotlink.
// This includes the DesiredLink declared by the registry, the closed set of
// Action kinds produced by the planner, and the FS interface every
// filesystem inspection and mutation goes through.
package types
