// Package normalisers provides implementations of the Normaliser interface
// for the local file formats the assistant ingests. Each normaliser knows
// how to extract text from a family of MIME types.
//
// Normalisers are registered with a Registry at startup; the filesystem
// loader hands every file to the registry, which picks the normaliser with
// the highest priority for the file's MIME type.
package normalisers
