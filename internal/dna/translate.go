package dna

import "strings"

// Standard genetic code. Stop codons translate to '*', codons with an
// unknown base to 'X'.
var codons = map[string]byte{
	"ATA": 'I', "ATC": 'I', "ATT": 'I', "ATG": 'M',
	"ACA": 'T', "ACC": 'T', "ACG": 'T', "ACT": 'T',
	"AAC": 'N', "AAT": 'N', "AAA": 'K', "AAG": 'K',
	"AGC": 'S', "AGT": 'S', "AGA": 'R', "AGG": 'R',
	"CTA": 'L', "CTC": 'L', "CTG": 'L', "CTT": 'L',
	"CCA": 'P', "CCC": 'P', "CCG": 'P', "CCT": 'P',
	"CAC": 'H', "CAT": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGA": 'R', "CGC": 'R', "CGG": 'R', "CGT": 'R',
	"GTA": 'V', "GTC": 'V', "GTG": 'V', "GTT": 'V',
	"GCA": 'A', "GCC": 'A', "GCG": 'A', "GCT": 'A',
	"GAC": 'D', "GAT": 'D', "GAA": 'E', "GAG": 'E',
	"GGA": 'G', "GGC": 'G', "GGG": 'G', "GGT": 'G',
	"TCA": 'S', "TCC": 'S', "TCG": 'S', "TCT": 'S',
	"TTC": 'F', "TTT": 'F', "TTA": 'L', "TTG": 'L',
	"TAC": 'Y', "TAT": 'Y', "TAA": '*', "TAG": '*',
	"TGC": 'C', "TGT": 'C', "TGA": '*', "TGG": 'W',
}

// Translate returns the amino-acid translation of seq starting at frame
// (0, 1 or 2). A trailing partial codon is dropped.
func Translate(seq []byte, frame int) []byte {
	if frame < 0 || frame > 2 {
		return nil
	}
	out := make([]byte, 0, (len(seq)-frame)/3)
	for i := frame; i+3 <= len(seq); i += 3 {
		aa, ok := codons[string(seq[i:i+3])]
		if !ok {
			aa = 'X'
		}
		out = append(out, aa)
	}
	return out
}

// LongestORF translates seq in the three forward frames, splits each
// translation on stop codons, and returns the longest fragment found.
func LongestORF(seq []byte) string {
	var longest string
	for frame := 0; frame < 3; frame++ {
		for _, frag := range strings.Split(string(Translate(seq, frame)), "*") {
			if len(frag) > len(longest) {
				longest = frag
			}
		}
	}
	return longest
}
