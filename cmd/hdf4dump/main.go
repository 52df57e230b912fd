// Command hdf4dump lists the Data Descriptor directory of one or more
// HDF4 files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hdf4dump:", err)
		os.Exit(1)
	}
}
