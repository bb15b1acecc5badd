// tradeledger drives the trade contract from the command line against a memory, LevelDB or
// PostgreSQL ledger.
package main

import (
	"os"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
