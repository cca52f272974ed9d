// Package main provides the entry point for the TrustLens CLI.
//
// TrustLens scores web pages for trustworthiness using content and link
// heuristics. It flags scam wording, insecure login forms, brand
// impersonation, and suspicious outbound links.
//
// Usage:
//
//	trustlens scan <url>
//	trustlens scan --file <list>
//
// See --help for all available options.
package main

// main is the entry point for TrustLens.
func main() {
	Execute()
}
