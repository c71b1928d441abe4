// Package annot holds the annotated gene models the correction passes are
// anchored to. Models are loaded once and never mutated.
package annot

import "fmt"

// Span is a 1-based inclusive genomic interval.
type Span struct {
	Start, Stop int
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Start, s.Stop) }

// Model is one mRNA-level gene model: its CDS spans in file order.
type Model struct {
	ID     string
	Contig string
	Strand byte // '+' or '-'
	Exons  []Span
}
