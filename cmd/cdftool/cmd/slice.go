package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-cdf/internal/index"
)

var (
	sliceRecords int
	sliceNRV     bool
)

var sliceCmd = &cobra.Command{
	Use:   "slice SHAPE EXPR",
	Short: "Resolve an indexing expression against a variable shape",
	Long: `Resolve an indexing expression against a variable shape and print the
resulting hyperslab geometry.

SHAPE is the comma-separated fixed axis sizes ("3,25" for a 3x25 variable,
"" for a scalar). EXPR is a comma-separated list of components: an integer,
a Python-style slice ("1:10:2", ":", "::-1"), or "...".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dims, err := parseShape(args[0])
		if err != nil {
			return err
		}
		expr, err := parseExpr(args[1])
		if err != nil {
			return err
		}
		shape := index.Shape{
			RecordCount:   sliceRecords,
			Dims:          dims,
			RecordVarying: !sliceNRV,
		}
		log.WithField("shape", shape).Debug("resolving expression")
		hs, err := index.New(shape, expr)
		if err != nil {
			return err
		}
		for a := 0; a < hs.Dims; a++ {
			fmt.Printf("axis %d: start=%d count=%d interval=%d degen=%t rev=%t\n",
				a, hs.Starts[a], hs.Counts[a], hs.Intervals[a], hs.Degen[a], hs.Rev[a])
		}
		fmt.Printf("expected shape: %v\n", hs.ExpectedShape())
		return nil
	},
}

func parseShape(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	dims := make([]int, len(parts))
	for i, p := range parts {
		n, err := cast.ToIntE(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parsing shape %q: %w", s, err)
		}
		dims[i] = n
	}
	return dims, nil
}

// parseExpr parses a comma-separated indexing expression into components.
func parseExpr(s string) ([]index.Component, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]index.Component, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch {
		case p == "...":
			out = append(out, index.Ellipsis())
		case strings.Contains(p, ":"):
			comp, err := parseSlice(p)
			if err != nil {
				return nil, err
			}
			out = append(out, comp)
		default:
			n, err := cast.ToIntE(p)
			if err != nil {
				return nil, fmt.Errorf("parsing component %q: %w", p, err)
			}
			out = append(out, index.Scalar(n))
		}
	}
	return out, nil
}

func parseSlice(p string) (index.Component, error) {
	fields := strings.Split(p, ":")
	if len(fields) > 3 {
		return index.Component{}, fmt.Errorf("slice %q has too many fields", p)
	}
	ptrs := make([]*int, 3)
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := cast.ToIntE(f)
		if err != nil {
			return index.Component{}, fmt.Errorf("parsing slice %q: %w", p, err)
		}
		ptrs[i] = &n
	}
	return index.Range(ptrs[0], ptrs[1], ptrs[2]), nil
}

func init() {
	sliceCmd.Flags().IntVar(&sliceRecords, "records", 100,
		"record count to resolve the record axis against")
	sliceCmd.Flags().BoolVar(&sliceNRV, "nrv", false,
		"treat the variable as non-record-varying")
	rootCmd.AddCommand(sliceCmd)
}
