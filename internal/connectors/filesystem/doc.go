// Package filesystem reads local documents from the data directory.
//
// Loader scans one directory, non-recursively, and hands each supported
// file to a NormaliserRegistry. Watch reports settled changes to that
// directory so a long-running server can rebuild its index.
package filesystem
