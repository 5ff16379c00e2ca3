// Command sqlstyle renders SQL literals, predicates and IN lists with a dialect
// style, shows how values are bound, and round trips sample values through a
// live database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
