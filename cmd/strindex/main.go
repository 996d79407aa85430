// Package main provides the strindex CLI entry point.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ledgerwatch/log/v3"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/viniciusth/strindex"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	verbosity string
	nfc       bool
	alphabet  string
}

// input converts a command line argument into the byte sequence handed to
// the library.
func (o *options) input(s string) []byte {
	if o.nfc {
		s = norm.NFC.String(s)
	}
	return []byte(s)
}

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(settings).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(settings Settings) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "strindex",
		Short: "Linear-time string indexing primitives",
		Long: `Run the string indexing primitives on sequences given as arguments.

Available structures:
- Prefix and Z functions: borders, occurrences, overlaps, reconstruction
- Suffix array with LCP: sorted suffixes, rotations, refrains, lookups
- Suffix automaton: distinct substrings, longest common substring`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ParseAlphabet(opts.alphabet); err != nil {
				return err
			}
			return setupLogging(opts.verbosity)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.verbosity, "verbosity", settings.Verbosity, "Log level (crit, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().BoolVar(&opts.nfc, "nfc", settings.NFC, "Normalize input to Unicode NFC before indexing")
	rootCmd.PersistentFlags().StringVar(&opts.alphabet, "alphabet", settings.Alphabet, "Symbol range for reconstruction and table transitions")

	rootCmd.AddCommand(bordersCmd(opts))
	rootCmd.AddCommand(zCmd(opts))
	rootCmd.AddCommand(findCmd(opts))
	rootCmd.AddCommand(mergeCmd(opts))
	rootCmd.AddCommand(decomposeCmd(opts))
	rootCmd.AddCommand(minstringCmd(opts))
	rootCmd.AddCommand(saCmd(opts))
	rootCmd.AddCommand(lcpCmd(opts))
	rootCmd.AddCommand(refrainCmd(opts))
	rootCmd.AddCommand(rotationCmd(opts))
	rootCmd.AddCommand(distinctCmd(opts))
	rootCmd.AddCommand(lcsCmd(opts))

	return rootCmd
}

func bordersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "borders [sequence]",
		Short: "Print the prefix function and the smallest period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.input(args[0])
			pi, err := strindex.ComputeBorders(seq)
			if err != nil {
				return err
			}
			period, err := strindex.Period(seq)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderPerPosition(out, seq, "Border", pi)
			fmt.Fprintf(out, "period: %d\n", period)
			return nil
		},
	}
}

func zCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "z [sequence]",
		Short: "Print the Z function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.input(args[0])
			z, err := strindex.ComputeZ(seq)
			if err != nil {
				return err
			}
			renderPerPosition(cmd.OutOrStdout(), seq, "Z", z)
			return nil
		},
	}
}

func findCmd(opts *options) *cobra.Command {
	var method string
	var suffixes bool

	cmd := &cobra.Command{
		Use:   "find [text] [pattern]",
		Short: "Print the start offsets of every occurrence of pattern in text",
		Long: `Print the start offsets of every occurrence of pattern in text.

Methods:
- kmp: prefix function over pattern, separator, text
- z: Z function over the same sequence
- index: suffix array lookup accelerated by LCP range minimum
- mismatch: occurrences with at most one substituted symbol
- split: number of text offsets ending a pattern cut into suffix and prefix`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, pattern := opts.input(args[0]), opts.input(args[1])
			out := cmd.OutOrStdout()

			if suffixes {
				lengths, err := strindex.LongestSuffixMatches(text, pattern)
				if err != nil {
					return err
				}
				renderPerPosition(out, text, "Suffix match", lengths)
				return nil
			}

			start := time.Now()
			var offsets []int
			var err error
			switch method {
			case "kmp":
				offsets, err = strindex.FindOccurrences(text, pattern)
			case "z":
				offsets, err = strindex.FindOccurrencesZ(text, pattern)
			case "mismatch":
				offsets, err = strindex.FindOccurrencesWithOneMismatch(text, pattern)
			case "split":
				count, err := strindex.CountSplitOccurrences(text, pattern)
				if err != nil {
					return err
				}
				log.Info("searched", "method", method, "n", len(text), "m", len(pattern), "matches", count, "took", time.Since(start))
				fmt.Fprintln(out, count)
				return nil
			case "index":
				var idx *strindex.Index[byte]
				idx, err = strindex.NewIndexBuilder(text).Build()
				if err == nil {
					offsets = idx.Lookup(pattern)
				}
			default:
				return errors.Errorf("unknown method %q", method)
			}
			if err != nil {
				return err
			}
			log.Info("searched", "method", method, "n", len(text), "m", len(pattern), "matches", len(offsets), "took", time.Since(start))

			fmt.Fprintln(out, joinInts(offsets))
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "kmp", "Search method (kmp, z, index, mismatch, split)")
	cmd.Flags().BoolVar(&suffixes, "suffixes", false, "Print the longest pattern suffix ending at each text offset instead")

	return cmd
}

func mergeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "merge [word...]",
		Short: "Merge words left to right, overlapping each with the accumulated result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words := make([][]byte, len(args))
			for i, a := range args {
				words[i] = opts.input(a)
			}
			merged, err := strindex.MergeWithMaxOverlap(words)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(merged))
			return nil
		},
	}
}

func decomposeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decompose [text] [word]",
		Short: "Split word into prefixes of text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, word := opts.input(args[0]), opts.input(args[1])
			cuts, ok := strindex.DecomposeIntoPrefixes(text, word)
			if !ok {
				return errors.Errorf("%q is not a concatenation of prefixes of %q", word, text)
			}

			parts := make([]string, len(cuts))
			for i, c := range cuts {
				end := len(word)
				if i+1 < len(cuts) {
					end = cuts[i+1]
				}
				parts[i] = string(word[c:end])
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return nil
		},
	}
}

func minstringCmd(opts *options) *cobra.Command {
	var fromZ bool

	cmd := &cobra.Command{
		Use:   "minstring [values]",
		Short: "Rebuild the smallest string with the given comma separated border (or Z) array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts(args[0])
			if err != nil {
				return err
			}
			alphabet, err := ParseAlphabet(opts.alphabet)
			if err != nil {
				return err
			}

			var s []byte
			if fromZ {
				s, err = strindex.ReconstructMinimalStringFromZ(values, alphabet)
			} else {
				s, err = strindex.ReconstructMinimalString(values, alphabet)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(s))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromZ, "z", false, "Treat the values as a Z array")

	return cmd
}

func saCmd(opts *options) *cobra.Command {
	var cyclic bool

	cmd := &cobra.Command{
		Use:   "sa [sequence]",
		Short: "Print the suffix array with the sorted suffixes (or rotations)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.input(args[0])
			start := time.Now()
			sa, err := strindex.BuildSuffixArray(seq, cyclic)
			if err != nil {
				return err
			}
			log.Info("built suffix array", "n", len(seq), "cyclic", cyclic, "took", time.Since(start))

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Rank", "Offset", "Suffix"})
			for i, p := range sa {
				suffix := seq[p:]
				if cyclic {
					suffix = append(append([]byte{}, seq[p:]...), seq[:p]...)
				}
				table.Append([]string{strconv.Itoa(i), strconv.Itoa(p), string(suffix)})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&cyclic, "cyclic", false, "Sort rotations instead of suffixes")

	return cmd
}

func lcpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lcp [sequence]",
		Short: "Print the suffix array with the LCP of each adjacent pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.input(args[0])
			sa, err := strindex.BuildSuffixArray(seq, false)
			if err != nil {
				return err
			}
			lcp, err := strindex.ComputeLCP(seq, sa)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Rank", "Offset", "LCP", "Suffix"})
			for i, p := range sa {
				h := ""
				if i < len(lcp) {
					h = strconv.Itoa(lcp[i])
				}
				table.Append([]string{strconv.Itoa(i), strconv.Itoa(p), h, string(seq[p:])})
			}
			table.Render()
			return nil
		},
	}
}

func refrainCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "refrain [sequence]",
		Short: "Print the substring maximizing length times occurrences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.input(args[0])
			r, err := strindex.FindMaximalRefrain(seq)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d\n%d\n%s\n", r.Score, r.Length, seq[r.Start:r.Start+r.Length])
			return nil
		},
	}
}

func rotationCmd(opts *options) *cobra.Command {
	var kth int

	cmd := &cobra.Command{
		Use:   "rotation [text] [pattern]",
		Short: "Count windows of text that are rotations of pattern",
		Long: `Count windows of text that are rotations of pattern.

With --kth K and a single argument, print the K-th smallest distinct
rotation of it instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if kth > 0 {
				if len(args) != 1 {
					return errors.New("--kth takes a single sequence")
				}
				r, ok := strindex.KthDistinctRotation(opts.input(args[0]), kth)
				if !ok {
					return errors.Errorf("%q has fewer than %d distinct rotations", args[0], kth)
				}
				fmt.Fprintln(out, string(r))
				return nil
			}
			if len(args) != 2 {
				return errors.New("rotation needs a text and a pattern")
			}

			count, err := strindex.CountRotationOccurrences(opts.input(args[0]), opts.input(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, count)
			return nil
		},
	}

	cmd.Flags().IntVar(&kth, "kth", 0, "Print the K-th distinct rotation (1-based)")

	return cmd
}

func distinctCmd(opts *options) *cobra.Command {
	var running bool

	cmd := &cobra.Command{
		Use:   "distinct [sequence]",
		Short: "Count distinct non-empty substrings",
		Long: `Count distinct non-empty substrings with a suffix automaton whose
transitions are a table over --alphabet. The count is cross-checked against
the suffix array and LCP.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := opts.input(args[0])
			if len(seq) == 0 {
				return strindex.ErrEmptySequence
			}
			alphabet, err := ParseAlphabet(opts.alphabet)
			if err != nil {
				return err
			}
			a, err := strindex.NewAutomatonWithAlphabet[byte](alphabet)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, c := range seq {
				if err := a.Extend(c); err != nil {
					return errors.Wrapf(err, "offset %d", i)
				}
				if running {
					fmt.Fprintln(out, a.DistinctSubstringCount())
				}
			}
			log.Debug("built automaton", "n", a.Len(), "states", a.NumStates())

			idx, err := strindex.NewIndexBuilder(seq).Build()
			if err != nil {
				return err
			}
			if idx.DistinctSubstringCount() != a.DistinctSubstringCount() {
				log.Error("distinct substring counts disagree", "automaton", a.DistinctSubstringCount(), "index", idx.DistinctSubstringCount())
			}
			if !running {
				fmt.Fprintln(out, a.DistinctSubstringCount())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&running, "running", false, "Print the count after every symbol")

	return cmd
}

func lcsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lcs [a] [b]",
		Short: "Print the longest common substring of two sequences",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := opts.input(args[0]), opts.input(args[1])
			start, length := strindex.LongestCommonSubstring(a, b)
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n%s\n", length, b[start:start+length])
			return nil
		},
	}
}

// renderPerPosition prints one row per position of seq with its value.
func renderPerPosition(w io.Writer, seq []byte, header string, values []int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Offset", "Symbol", header})
	for i, v := range values {
		table.Append([]string{strconv.Itoa(i), string(seq[i]), strconv.Itoa(v)})
	}
	table.Render()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		values[i] = v
	}
	return values, nil
}
