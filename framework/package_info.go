// Package framework contains the low-level infrastructure shared by the pipeline
// runner and its step implementations: the Logger abstraction, output capturing
// for per-step diagnostics, and small reusable helpers in the subpackages.
//
// Nothing in this package knows what a pipeline step actually does; the
// domain-specific code lives in the pipeline, steps, and vendorclient packages.
package framework
