// Command blstool produces keys, signed mint messages and caller tokens for
// exercising a bridged deployment.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
