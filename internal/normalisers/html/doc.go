// Package html extracts articles from web pages and converts them to
// markdown.
//
// Extraction prefers the selectors used by WeChat official account pages
// and falls back to generic document structure, so ordinary pages work too.
package html
