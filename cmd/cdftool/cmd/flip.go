package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-cdf/cdf"
)

var flipCmd = &cobra.Command{
	Use:   "flip JSON",
	Short: "Reverse the axis order of a nested JSON array",
	Long: `Reverse the axis order of a rectangular nested JSON array, converting
between row-major and column-major nesting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data any
		if err := json.Unmarshal([]byte(args[0]), &data); err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}
		shape, err := cdf.NestedShape(data)
		if err != nil {
			return err
		}
		log.WithField("shape", shape).Debug("flipping")
		flipped, err := cdf.FlipMajority(data)
		if err != nil {
			return err
		}
		out, err := json.Marshal(flipped)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flipCmd)
}
