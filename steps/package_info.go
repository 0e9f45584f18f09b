// Package steps provides the built-in step kinds the workflow definition can
// reference:
//
//   - exec: run an external collaborator command with injected env vars
//   - fetch-client: download, validate, and extract the vendor client archive
//   - upload-artifacts: copy artifact files to S3 (skips itself if unconfigured)
//   - debug-dump: emit failure diagnostics (runs with when: on-failure)
//
// The registry returned by NewRegistry is the only thing the sequencer sees.
package steps
