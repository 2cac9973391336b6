// Package registry holds the named link groups dotlink knows about.
//
// A Registry is built once per run from the effective configuration: every
// source is made absolute against the source directory and every
// destination has its placeholders expanded. After that it is read-only.
// Select turns the group names given on the command line into the flat,
// order-preserving list of desired links the planner consumes.
package registry
