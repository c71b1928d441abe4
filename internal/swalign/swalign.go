// Package swalign adapts a Smith-Waterman affine-gap aligner to the
// contract the indel extractor needs: both aligned strings in genome +
// orientation, a ranking score, and the 0-based offset of the first
// aligned base within the genomic patch (a local alignment may trim an
// unaligned 5' prefix).
package swalign

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

const (
	matchScore = 2
	mismatch   = -1
	gapOpen    = -5
	gapExtend  = -1
)

// ErrAmbiguous is returned when either input carries a non-ACGT base.
// The alignment alphabet is strict, and an ambiguous patch or transcript
// is exactly the kind of evidence the extractor refuses anyway.
var ErrAmbiguous = errors.New("swalign: ambiguous base in input")

// ErrNoAlignment is returned when no positive-scoring local alignment
// exists between the inputs.
var ErrNoAlignment = errors.New("swalign: no local alignment")

// Alignment is a local pairwise alignment of a transcript against a
// genomic patch. Both strings use '-' as the gap symbol.
type Alignment struct {
	Genome     string
	Transcript string
	Score      int
	Offset     int // 0-based start of the alignment within the patch
}

// HasGap reports whether either aligned string contains a gap column.
func (a Alignment) HasGap() bool {
	return strings.ContainsRune(a.Genome, '-') || strings.ContainsRune(a.Transcript, '-')
}

// Aligner wraps a reusable Smith-Waterman affine-gap configuration.
type Aligner struct {
	sw align.SWAffine
}

// New returns an aligner with the fixed scoring used throughout the tool.
func New() *Aligner {
	return &Aligner{sw: align.SWAffine{
		Matrix: align.Linear{
			{0, gapExtend, gapExtend, gapExtend, gapExtend},
			{gapExtend, matchScore, mismatch, mismatch, mismatch},
			{gapExtend, mismatch, matchScore, mismatch, mismatch},
			{gapExtend, mismatch, mismatch, matchScore, mismatch},
			{gapExtend, mismatch, mismatch, mismatch, matchScore},
		},
		GapOpen: gapOpen,
	}}
}

// Align locally aligns transcript against patch. Both inputs must already
// be in genome + orientation (the caller reverse-complements '-' strand
// transcripts first).
func (a *Aligner) Align(patch, transcript []byte) (Alignment, error) {
	if hasAmbiguous(patch) || hasAmbiguous(transcript) {
		return Alignment{}, ErrAmbiguous
	}
	g := linear.NewSeq("patch", alphabet.BytesToLetters(patch), alphabet.DNAgapped)
	t := linear.NewSeq("transcript", alphabet.BytesToLetters(transcript), alphabet.DNAgapped)
	aln, err := a.sw.Align(g, t)
	if err != nil {
		return Alignment{}, fmt.Errorf("swalign: %w", err)
	}
	if len(aln) == 0 {
		return Alignment{}, ErrNoAlignment
	}
	fa := align.Format(g, t, aln, '-')
	out := Alignment{
		Genome:     fmt.Sprint(fa[0]),
		Transcript: fmt.Sprint(fa[1]),
		Offset:     aln[0].Features()[0].Start(),
	}
	out.Score = score(out.Genome, out.Transcript)
	return out, nil
}

// score recomputes the alignment score from the formatted columns with
// the same weights the matrix is built from. It only has to rank
// candidate alignments consistently.
func score(g, t string) int {
	s := 0
	inGapG, inGapT := false, false
	for i := 0; i < len(g) && i < len(t); i++ {
		switch {
		case g[i] == '-':
			if !inGapG {
				s += gapOpen
			}
			s += gapExtend
			inGapG, inGapT = true, false
		case t[i] == '-':
			if !inGapT {
				s += gapOpen
			}
			s += gapExtend
			inGapG, inGapT = false, true
		case g[i] == t[i]:
			s += matchScore
			inGapG, inGapT = false, false
		default:
			s += mismatch
			inGapG, inGapT = false, false
		}
	}
	return s
}

func hasAmbiguous(seq []byte) bool {
	for _, b := range seq {
		switch b {
		case 'A', 'C', 'G', 'T':
		default:
			return true
		}
	}
	return false
}
