// Command moodctl is a terminal client for the MoodMate journal. It shares the
// server's configuration and store, so entries made here show up in the web views.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(openRuntime).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
