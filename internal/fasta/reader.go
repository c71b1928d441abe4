package fasta

import (
	"bufio"
	"bytes"
	"fmt"
)

// Load reads every record of a FASTA file (plain or gzip) into memory,
// keyed by the first whitespace-delimited token of the header line.
// Sequences are upper-cased so downstream comparisons and translation
// are case-free.
func Load(path string) (map[string][]byte, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	sc := bufio.NewScanner(rc)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	recs := make(map[string][]byte)
	var (
		id  string
		seq = make([]byte, 0, 1<<20)
	)
	flush := func() {
		if id == "" {
			return
		}
		recs[id] = append([]byte(nil), seq...)
		seq = seq[:0]
	}
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			id = parseHeaderID(line[1:])
			continue
		}
		seq = append(seq, bytes.ToUpper(bytes.TrimSpace(line))...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fasta scan %s: %w", path, err)
	}
	flush()
	return recs, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
