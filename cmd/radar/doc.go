// Package main hosts the radar CLI entrypoint and command graph.
//
// The Cobra-based command tree drives the discovery pipeline end to end:
// monitor fetches the sources and writes the ranked raw digest, review
// triages it interactively, and import pushes the reviewed digest into the
// Notion tracking database. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
