package main

import (
	"fmt"
	"os"
)

func main() {
	a := newApp()
	err := newRootCmdFor(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
