// Command mongorepo inspects and checks MongoDB connection strings the way
// repositories resolve them.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
