// Package main is the entry point for the pokerledger CLI, which imports home
// poker session results and reports lifetime standings and stats.
package main

import "github.com/pable/go-poker-ledger/cmd"

func main() {
	cmd.Execute()
}
