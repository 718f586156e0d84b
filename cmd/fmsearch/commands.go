package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/viniciusth/fmindex"
	"github.com/viniciusth/fmindex/config"
	"github.com/viniciusth/fmindex/ingest"
)

// options are the global flags, seeded from config.Settings.
type options struct {
	sort      string
	rank      string
	foldCase  bool
	normalize bool
	sentinel  string
	verbose   bool

	settings config.Settings
}

// loaded is an ingested file and the index built over it.
type loaded struct {
	seq  *ingest.Sequence
	ix   *fmindex.Index
	opts ingest.Options
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "fmsearch",
		Short: "Exact substring search over a sequence file with an FM-index",
		Long: `Build an FM-index (suffix array, Burrows-Wheeler transform, C and Occ tables)
over a sequence file and answer exact substring queries by backward search.

Lines are cut at '\r', '>' and ';'. A line starting with '>' opens a new record.
Files ending in .gz, .bz2 or .xz are decompressed on the fly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	settings, err := config.New()
	if err != nil {
		// Invalid environment: report it when a command runs, defaults for flag help.
		rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error { return err }
		settings = config.Settings{Ingest: config.IngestConfig{Normalize: true}, LogLevel: slog.LevelInfo}
	}
	opts.settings = settings

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.sort, "sort", settings.Index.Sort.String(), "Suffix sort strategy (induced, doubling, partition)")
	flags.StringVar(&opts.rank, "rank", settings.Index.Rank.String(), "Rank backend (dense, bitmap)")
	flags.BoolVar(&opts.foldCase, "fold-case", settings.Ingest.FoldCase, "Lowercase the sequence and the queries")
	flags.BoolVar(&opts.normalize, "normalize", settings.Ingest.Normalize, "Apply Unicode NFC to the sequence and the queries")
	flags.StringVar(&opts.sentinel, "sentinel", "$", "Character used to print the sentinel")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log construction stages")

	rootCmd.AddCommand(indexCmd(opts))
	rootCmd.AddCommand(saCmd(opts))
	rootCmd.AddCommand(searchCmd(opts))
	rootCmd.AddCommand(repeatCmd(opts))
	return rootCmd
}

func (o *options) resolve(cmd *cobra.Command) error {
	sort, err := fmindex.ParseSortStrategy(o.sort)
	if err != nil {
		return err
	}
	rank, err := fmindex.ParseRankBackend(o.rank)
	if err != nil {
		return err
	}
	if len(o.sentinel) != 1 {
		return fmt.Errorf("--sentinel must be a single byte, got %q", o.sentinel)
	}
	o.settings.Index.Sort = sort
	o.settings.Index.Rank = rank
	o.settings.Ingest.FoldCase = o.foldCase
	o.settings.Ingest.Normalize = o.normalize
	if o.verbose {
		o.settings.LogLevel = slog.LevelDebug
	}
	return nil
}

func (o *options) logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: o.settings.LogLevel}))
}

// load ingests path and builds the index; configure adjusts the builder.
func (o *options) load(cmd *cobra.Command, path string, configure func(*fmindex.Builder, *ingest.Sequence)) (*loaded, error) {
	logger := o.logger(cmd.ErrOrStderr())
	ingestOpts := ingest.Options{FoldCase: o.settings.Ingest.FoldCase, Normalize: o.settings.Ingest.Normalize}

	seq, err := ingest.ReadFile(path, ingestOpts)
	if err != nil {
		return nil, err
	}
	logger.Info("sequence loaded", "path", path, "symbols", len(seq.Data), "records", len(seq.Records))

	b := fmindex.NewBuilder(seq.Data).
		SuffixSort(o.settings.Index.Sort).
		RankWith(o.settings.Index.Rank).
		WithLogger(logger)
	if o.settings.Index.LCP {
		b.WithLCP()
	}
	if configure != nil {
		configure(b, seq)
	}
	ix, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &loaded{seq: seq, ix: ix, opts: ingestOpts}, nil
}

func (o *options) label(s fmindex.Symbol) string {
	b, ok := s.Byte()
	if !ok {
		return o.sentinel
	}
	if b < unicode.MaxASCII && unicode.IsPrint(rune(b)) {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02x", b)
}

func indexCmd(opts *options) *cobra.Command {
	var occLimit int

	cmd := &cobra.Command{
		Use:   "index FILE [QUERY]",
		Short: "Print the transform, the C and Occ tables, and optionally the range of a query",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd, args[0], nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ix := l.ix

			fmt.Fprintf(out, "BW = %s\n\n", ix.TransformBytes(opts.sentinel[0]))
			symbols := ix.Alphabet().Symbols()
			for _, s := range symbols {
				fmt.Fprintf(out, "C[%s] = %d\n", opts.label(s), ix.C(s))
			}
			fmt.Fprintln(out)

			if ix.Len() <= occLimit {
				writeOccTable(out, opts, ix)
			} else {
				fmt.Fprintf(out, "OCC: %d rows, above --occ-limit %d\n", ix.Len(), occLimit)
			}

			if len(args) == 2 {
				fmt.Fprintln(out)
				query := l.opts.Pattern(args[1])
				fmt.Fprintf(out, "S = %s%s\n", l.seq.Data, opts.sentinel)
				res := ix.SearchString(query)
				if res.Matched {
					fmt.Fprintf(out, "range(S, %s) = [%d, %d]\n", query, res.Range.Lo, res.Range.Hi)
				} else {
					fmt.Fprintf(out, "%s not found\n", query)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&occLimit, "occ-limit", 256, "Print the Occ table only for sequences up to this length")
	return cmd
}

func writeOccTable(out io.Writer, opts *options, ix *fmindex.Index) {
	width := len(strconv.Itoa(ix.Len())) + 1
	symbols := ix.Alphabet().Symbols()

	fmt.Fprintln(out, "OCC:")
	fmt.Fprintf(out, "%*s ", width, "")
	for _, s := range symbols {
		fmt.Fprintf(out, "%*s", width+1, opts.label(s))
	}
	fmt.Fprint(out, "\n\n")

	for i := 0; i < ix.Len(); i++ {
		fmt.Fprintf(out, "%*d:", width, i)
		for _, s := range symbols {
			fmt.Fprintf(out, "%*d", width+1, ix.Occ(s, i))
		}
		fmt.Fprintln(out)
	}
}

func saCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sa FILE",
		Short: "Print the suffix array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd, args[0], nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, pos := range l.ix.SuffixArray() {
				fmt.Fprintf(out, "SA[%d] = %d\n", i, pos)
			}
			return nil
		},
	}
}

func searchCmd(opts *options) *cobra.Command {
	var maxHits int
	var records int

	cmd := &cobra.Command{
		Use:   "search FILE PATTERN...",
		Short: "Count and locate each pattern",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd, args[0], func(b *fmindex.Builder, seq *ingest.Sequence) {
				b.WithRecords(seq.Offsets())
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for _, raw := range args[1:] {
				pattern := l.opts.Pattern(raw)
				res := l.ix.SearchString(pattern)
				if !res.Matched {
					fmt.Fprintf(out, "%s: not found\n", pattern)
					continue
				}
				fmt.Fprintf(out, "%s: %d occurrences, range [%d, %d]\n", pattern, res.Count, res.Range.Lo, res.Range.Hi)

				positions, err := l.ix.Locate([]byte(pattern))
				if err != nil {
					return err
				}
				for i, pos := range positions {
					if maxHits > 0 && i == maxHits {
						fmt.Fprintf(out, "  ... %d more\n", len(positions)-maxHits)
						break
					}
					rec, _ := l.seq.RecordAt(pos)
					fmt.Fprintf(out, "  %d\t%s:%d\n", pos, recordName(rec), pos-rec.Offset)
				}

				if records > 0 {
					found, err := l.ix.FindRecords([]byte(pattern), records)
					if err != nil {
						return err
					}
					names := make([]string, len(found))
					for i, r := range found {
						names[i] = recordName(l.seq.Records[r])
					}
					fmt.Fprintf(out, "  records: %v\n", names)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxHits, "max-hits", 20, "Maximum positions printed per pattern (0 for all)")
	cmd.Flags().IntVar(&records, "records", 0, "List up to this many distinct records in which each pattern starts")
	return cmd
}

func recordName(r ingest.Record) string {
	if r.Name == "" {
		return "-"
	}
	return r.Name
}

func repeatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repeat FILE",
		Short: "Print the longest substring occurring at least twice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd, args[0], func(b *fmindex.Builder, _ *ingest.Sequence) {
				b.WithLCP()
			})
			if err != nil {
				return err
			}
			pos, length, err := l.ix.LongestRepeat()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if length == 0 {
				fmt.Fprintln(out, "no repeated substring")
				return nil
			}
			fmt.Fprintf(out, "%s (length %d, at %d, %d occurrences)\n",
				l.seq.Data[pos:pos+length], length, pos, l.ix.Count(l.seq.Data[pos:pos+length]))
			return nil
		},
	}
}
