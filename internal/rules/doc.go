// Package rules provides the static scoring rule catalog: keyword rules,
// informational content patterns, and the weights and word lists used by
// the structural checks.
//
// The catalog is loaded once at process start and never mutated at
// runtime. Malformed catalog entries are a build-time concern; the only
// runtime extension point is the additive keyword-rule merge from the
// user configuration file.
package rules
