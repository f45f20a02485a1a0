// Package web crawls a support website into webpage documents.
//
// The crawl is breadth-first from a seed URL, stays on the seed's host,
// fetches one page at a time with a fixed politeness delay and never
// fetches more than the page budget. Content extraction lives in the
// html normaliser package.
package web
