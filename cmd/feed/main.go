// Command feed browses the product feed from a terminal and seeds a local catalogue.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
