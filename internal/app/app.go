// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"indelfix/internal/annot"
	"indelfix/internal/cli"
	"indelfix/internal/cmdutil"
	"indelfix/internal/engine"
	"indelfix/internal/fasta"
	"indelfix/internal/hits"
	"indelfix/internal/ledger"
	"indelfix/internal/overlap"
	"indelfix/internal/pipeline"
	"indelfix/internal/reconstruct"
	"indelfix/internal/rescue"
	"indelfix/internal/runutil"
	"indelfix/internal/swalign"
	"indelfix/internal/version"
	"indelfix/internal/writers"
)

const rescueComment = "# gene rescue module indel predictions"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("indelfix")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "indelfix version %s\n", version.Version)
		return 0
	}
	return run(parent, opts, stdout, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, opts cli.Options, stdout, stderr io.Writer) int {
	// Never clobber an existing edit list silently; with --force it is
	// parked as a backup until this run succeeds.
	backup := ""
	if _, err := os.Stat(opts.Output); opts.Output != "-" && err == nil {
		if !opts.Force {
			_, _ = fmt.Fprintf(stderr, "%s already exists; pass --force or move it aside\n", opts.Output)
			return 2
		}
		var err error
		backup, err = runutil.BackupExisting(opts.Output, ".")
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		cmdutil.Warnf(stderr, false, "existing %s moved to %s until this run completes", opts.Output, backup)
	}

	genome, err := fasta.Load(opts.Genome)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	cmdutil.Verbosef(stderr, opts.Verbose, "loaded genome FASTA (%d contigs)", len(genome))

	models, err := annot.ParseModels(opts.Annotation)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	cmdutil.Verbosef(stderr, opts.Verbose, "parsed annotation GFF3 (%d models)", len(models))

	allHits, err := hits.ParseHits(opts.Alignments)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	cmdutil.Verbosef(stderr, opts.Verbose, "parsed alignment GFF3 (%d hits)", len(allHits))

	transcripts, err := fasta.Load(opts.Transcripts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	cmdutil.Verbosef(stderr, opts.Verbose, "loaded transcriptome FASTA (%d transcripts)", len(transcripts))

	index, err := hits.NewIndex(allHits)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	eng := &engine.Engine{
		Genome:      genome,
		Transcripts: transcripts,
		Index:       index,
		Aligner:     swalign.New(),
		MinIdentity: hits.MinIdentity,
	}

	var trace *writers.TraceWriter
	if opts.Log {
		logPath := runutil.LogName(".", opts.Genome)
		lf, err := os.Create(logPath)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() { _ = lf.Close() }()
		trace, err = writers.NewTraceWriter(lf)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		cmdutil.Verbosef(stderr, opts.Verbose, "trace log: %s", logPath)
	}

	global := ledger.New()
	blocks := overlap.NewSet()
	pcfg := pipeline.Config{Threads: opts.Threads}

	cmdutil.Verbosef(stderr, opts.Verbose, "### main gene improvement pass ###")
	err = pipeline.ForEach(ctx, pcfg, models, eng.Process, func(out engine.Outcome) error {
		if trace != nil {
			for _, tr := range out.Trace {
				if err := trace.Row(tr); err != nil {
					return err
				}
			}
		}
		m := out.Model
		if out.Scratch.Empty() {
			blocks.Record(m, out.Orig)
			cmdutil.Verbosef(stderr, opts.Verbose, "no edits found [%s]", m.ID)
			if trace != nil {
				return trace.Comment(m.ID + "\tno edits found")
			}
			return nil
		}
		res := reconstruct.Compare(m.Contig, genome[m.Contig], m.Strand, out.Orig, out.New, out.Scratch)
		ledger.Merge(global, out.Scratch)
		blocks.Record(m, out.New)
		cmdutil.Verbosef(stderr, opts.Verbose, "%s [%s]", res.Verdict, m.ID)
		if trace != nil {
			return trace.Comment(fmt.Sprintf("%s\t%s\tOld=%s\tNew=%s", m.ID, res.Verdict, res.OrigProt, res.NewProt))
		}
		return nil
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Verbose || trace != nil {
		merges := blocks.Merges()
		cmdutil.Verbosef(stderr, opts.Verbose, "### probable gene merges: %d ###", len(merges))
		for _, mg := range merges {
			line := fmt.Sprintf("%s\t%s", mg.A.ModelID, mg.B.ModelID)
			cmdutil.Verbosef(stderr, opts.Verbose, "%s", line)
			if trace != nil {
				if err := trace.Comment("probable gene merge\t" + line); err != nil {
					_, _ = fmt.Fprintln(stderr, err)
					return 3
				}
			}
		}
	}

	var out io.Writer = stdout
	if opts.Output != "-" {
		outFH, err := os.Create(opts.Output)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() { _ = outFH.Close() }()
		out = outFH
	}
	if err := writers.WriteEditHeader(out); err != nil {
		return writeFail(stderr, err)
	}
	if err := writers.WriteEdits(out, global, ""); err != nil {
		return writeFail(stderr, err)
	}

	if opts.Rescue {
		cmdutil.Verbosef(stderr, opts.Verbose, "### gene rescue pass ###")
		if trace != nil {
			if err := trace.Comment("gene rescue exon indels"); err != nil {
				_, _ = fmt.Fprintln(stderr, err)
				return 3
			}
		}
		exons, err := annot.NewSpanIndex(models)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		groups := rescue.Groups(allHits, exons, hits.MinIdentity)
		finder := &rescue.Finder{Engine: eng, MinIdentity: hits.MinIdentity}
		novel := ledger.New()
		err = pipeline.ForEach(ctx, pcfg, groups, finder.Process, func(out rescue.Outcome) error {
			if out.Edits != nil {
				ledger.Merge(novel, out.Edits)
			}
			if trace != nil {
				return trace.Row(out.Trace)
			}
			return nil
		})
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		if err := writers.WriteEdits(out, novel, rescueComment); err != nil {
			return writeFail(stderr, err)
		}
	}

	if trace != nil {
		if err := trace.Flush(); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}
	if backup != "" {
		_ = os.Remove(backup)
	}
	return 0
}

// writeFail maps output errors to the write exit code; a downstream
// consumer closing early is not a failure.
func writeFail(stderr io.Writer, err error) int {
	if writers.IsBrokenPipe(err) {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, err)
	return 3
}
