// Package vendorclient implements the download-and-unpack sequence for the vendor's
// command-line client archive: one authenticated HTTPS GET, a fail-fast chain of
// validation guards over the downloaded bytes, and full extraction into a target
// directory.
//
// Every failure here is terminal for the pipeline run; there are no retries and no
// partial-recovery paths.
package vendorclient
