// Package cli implements vaultctl, the administrative command line for
// linevault. Every command opens one community-scoped session, runs a single
// vault, card or claim operation and prints the outcome.
package cli
