// Package textutil provides small text cleanup helpers shared by connectors
// and the digest pipeline.
//
// Catalog payloads arrive with embedded HTML, decorative unicode, and
// unbounded lengths; these helpers reduce them to plain, capped strings.
package textutil
