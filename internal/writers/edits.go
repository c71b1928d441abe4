package writers

import (
	"bufio"
	"fmt"
	"io"

	"indelfix/internal/ledger"
)

// EditHeader is the first line of a fresh edit file.
const EditHeader = "#contig_id\tposition\treplacement"

// WriteEditHeader writes the edit-file header line.
func WriteEditHeader(w io.Writer) error {
	_, err := fmt.Fprintln(w, EditHeader)
	return err
}

// WriteEdits appends one section of edit rows: contigs sorted, positions
// ascending within each. A non-empty comment becomes a leading comment
// line, marking the section boundary for the downstream patcher.
func WriteEdits(w io.Writer, l ledger.Ledger, comment string) error {
	bw := bufio.NewWriter(w)
	if comment != "" {
		if _, err := fmt.Fprintln(bw, comment); err != nil {
			return err
		}
	}
	for _, contig := range l.Contigs() {
		for _, pos := range l.Positions(contig) {
			if _, err := fmt.Fprintf(bw, "%s\t%d\t%s\n", contig, pos, l[contig][pos]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
