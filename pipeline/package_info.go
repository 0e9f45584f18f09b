// Package pipeline is the workflow sequencer: it loads a declarative YAML
// definition of ordered steps and executes them strictly in order, fail-fast,
// in a single process. There is no branching on data content, no retry loop, and
// no parallel work; the only conditional behavior is the per-step condition class
// ("always" steps still run after a failure, "on-failure" steps run only after
// one).
//
// The package knows nothing about what the steps do. Step implementations are
// supplied through a Registry keyed by step kind; the built-in kinds live in the
// steps package.
package pipeline
