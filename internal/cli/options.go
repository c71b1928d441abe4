// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"indelfix/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	Annotation  string // gene annotation GFF3
	Genome      string // genome contig FASTA
	Alignments  string // transcript-to-genome alignment GFF3
	Transcripts string // transcriptome FASTA (same set the alignments used)

	// Output
	Output string // edit-list TSV
	Log    bool   // additionally write a diagnostic trace log
	Force  bool   // allow overwriting an existing output (kept as a backup until exit)

	// Behaviour
	Rescue  bool // run the gene rescue pass over unannotated regions
	Threads int  // worker threads; 0 = all CPUs
	Verbose bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: transcript-evidence indel correction for genome assemblies

Compares annotated exons against transcript alignments, locates small
insertion/deletion errors, and emits a position-level edit list for a
downstream genome patching step. Transcript CDS regions are the intended
input; they reduce the chance of an edit falsely interrupting a frame.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Annotation, "annotation", "", "gene annotation GFF3 [*]")
	fs.StringVar(&opt.Genome, "genome", "", "genome contig FASTA (plain or gzip) [*]")
	fs.StringVar(&opt.Alignments, "alignments", "", "transcript alignment GFF3 (cDNA_match records) [*]")
	fs.StringVar(&opt.Transcripts, "transcriptome", "", "transcriptome FASTA used for the alignments [*]")
	fs.StringVar(&opt.Output, "output", "", "output edit-list file, '-' for stdout [*]")

	fs.BoolVar(&opt.Rescue, "rescue", false, "also correct indels in transcript-supported unannotated regions [false]")
	fs.BoolVar(&opt.Force, "force", false, "overwrite an existing output file (backed up until exit) [false]")
	fs.BoolVar(&opt.Log, "log", false, "write a per-exon diagnostic trace log [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "print per-model decisions to stderr [false]")
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	switch {
	case opt.Annotation == "":
		return opt, errors.New("--annotation is required")
	case opt.Genome == "":
		return opt, errors.New("--genome is required")
	case opt.Alignments == "":
		return opt, errors.New("--alignments is required")
	case opt.Transcripts == "":
		return opt, errors.New("--transcriptome is required")
	case opt.Output == "":
		return opt, errors.New("--output is required")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	return opt, nil
}
