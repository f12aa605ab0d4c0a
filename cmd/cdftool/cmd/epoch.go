package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-cdf/cdf"
)

var epochCmd = &cobra.Command{
	Use:   "epoch",
	Short: "Convert between timestamps and epoch encodings",
}

var epochEncodeCmd = &cobra.Command{
	Use:   "encode TIMESTAMP",
	Short: "Encode an RFC 3339 timestamp as an epoch value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := time.Parse(time.RFC3339Nano, args[0])
		if err != nil {
			return fmt.Errorf("parsing timestamp: %w", err)
		}
		if epoch16 {
			sec, psec := cdf.TimeToEpoch16(t)
			fmt.Printf("%.0f %.0f\n", sec, psec)
			return nil
		}
		fmt.Printf("%.3f\n", cdf.TimeToEpoch(t))
		return nil
	},
}

var epochDecodeCmd = &cobra.Command{
	Use:   "decode VALUE [PICOSECONDS]",
	Short: "Decode an epoch value to a UTC timestamp",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, err := cast.ToFloat64E(args[0])
		if err != nil {
			return fmt.Errorf("parsing epoch value: %w", err)
		}
		var t time.Time
		if len(args) == 2 {
			psec, err := cast.ToFloat64E(args[1])
			if err != nil {
				return fmt.Errorf("parsing picosecond component: %w", err)
			}
			t = cdf.Epoch16ToTime(sec, psec)
		} else {
			t = cdf.EpochToTime(sec)
		}
		fmt.Println(t.Format("2006-01-02T15:04:05.000000Z"))
		return nil
	},
}

var epoch16 bool

func init() {
	epochEncodeCmd.Flags().BoolVar(&epoch16, "epoch16", false,
		"emit the two-component seconds/picoseconds encoding")
	epochCmd.AddCommand(epochEncodeCmd, epochDecodeCmd)
	rootCmd.AddCommand(epochCmd)
}
