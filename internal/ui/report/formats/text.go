package formats

import (
	"bufio"
	"fmt"
	"io"
)

// WriteText prints one compiler-style warning per diagnostic.
func WriteText(w io.Writer, data Data) error {
	bw := bufio.NewWriter(w)
	for _, d := range data.Diagnostics {
		fmt.Fprintln(bw, d.String())
	}
	return bw.Flush()
}
