// Package html extracts readable text from HTML pages.
//
// Extract is shared by the web crawler and the Normaliser for saved HTML
// files. It strips scripts, styles and page chrome, picks the main content
// block through an ordered list of CSS selectors, drops short and
// navigation lines, and collects same-host links for the crawl frontier.
package html
