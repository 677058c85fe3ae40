// Package main is the metrixbot command line.
//
// Metrixbot announces upcoming rounds of a DiscGolfMetrix series on a
// Facebook page. It reads the public series page, picks the round that
// plays tomorrow, composes a Norwegian announcement, and publishes it
// through the Graph API.
//
// Usage:
//
//	metrixbot post
//	metrixbot preview --all
//	metrixbot watch
//
// Run with --help for the full flag reference.
package main

func main() {
	Execute()
}
