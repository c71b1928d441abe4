package annot

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseModels reads a GFF3 annotation and returns one Model per mRNA, in
// file order. Only mRNA and CDS features are consulted; CDS lines attach
// to the most recent mRNA. mRNAs without any CDS (non-coding) are dropped.
func ParseModels(path string) ([]Model, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var models []Model
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 9 {
			continue
		}
		switch cols[2] {
		case "mRNA":
			id := Attribute(cols[8], "ID")
			if id == "" {
				return nil, fmt.Errorf("annot %s:%d: mRNA without ID attribute", path, ln)
			}
			models = append(models, Model{ID: id, Contig: cols[0], Strand: strandOf(cols[6])})
		case "CDS":
			if len(models) == 0 {
				return nil, fmt.Errorf("annot %s:%d: CDS before any mRNA", path, ln)
			}
			start, err1 := strconv.Atoi(cols[3])
			stop, err2 := strconv.Atoi(cols[4])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("annot %s:%d: bad CDS coordinates %q..%q", path, ln, cols[3], cols[4])
			}
			m := &models[len(models)-1]
			m.Exons = append(m.Exons, Span{Start: start, Stop: stop})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("annot scan %s: %w", path, err)
	}
	coding := models[:0]
	for _, m := range models {
		if len(m.Exons) > 0 {
			coding = append(coding, m)
		}
	}
	return coding, nil
}

// Attribute extracts one Key=Value entry from a GFF3 attribute column.
func Attribute(field, key string) string {
	for _, part := range strings.Split(field, ";") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, key+"="); ok {
			return v
		}
	}
	return ""
}

func strandOf(col string) byte {
	if col == "-" {
		return '-'
	}
	return '+'
}
