// Package main hosts the vodub CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline
// runs, ledger queries, dependency checks, and configuration scaffolding.
// It centralizes configuration resolution and structured logging setup so
// commands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
