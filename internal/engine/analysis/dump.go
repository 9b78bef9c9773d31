package analysis

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes every scope with its symbols, then the imported modules. The
// output is diagnostic only.
func (c *Context) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, scope := range c.table.Scopes() {
		fmt.Fprintf(bw, "File: %s\n", scope)
		for _, sym := range c.table.Get(scope).Symbols() {
			if len(sym.Owners) == 0 {
				fmt.Fprintf(bw, "%s: %s\n", sym.Kind, sym.Name)
				continue
			}
			for _, owner := range sym.Owners.Sorted() {
				fmt.Fprintf(bw, "%s: %s %s\n", sym.Kind, owner, sym.Name)
			}
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprint(bw, "\nModules:\n")
	for _, module := range c.imports.Modules() {
		fmt.Fprintln(bw, module)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "Unused Imports:")
	return bw.Flush()
}
