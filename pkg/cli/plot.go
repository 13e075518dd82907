package cli

import (
	"github.com/spf13/cobra"

	"github.com/parsecbench/parsecbench/pkg/plot"
)

var (
	scaleDiagram bool
	plotOutput   string
	dirQualified bool
)

var plotCmd = &cobra.Command{
	Use:   "plot [flags] file...",
	Short: "Render a comparison diagram from result files",
	Long: `Averages the run times of each result file per thread count and draws one
line per file. Without --output the diagram opens in a window and waits for a
mouse click; with --output the extension (.png or .svg) selects the renderer.

--scale drops absolute y-values and gives every series its own normalized
scale, so differently-sized workloads can be compared by shape. Scaled mode is
limited to 7 input files, one palette color each.`,
	Example: `  # Interactive comparison of two result files
  parsecbench plot results/swaptions.csv results/x264.csv

  # Shape comparison across hosts, written to a file
  parsecbench plot --scale --dir -o shapes.svg vm1/*.csv vm2/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := plot.Build(args, plot.Options{
			Scaled:       scaleDiagram,
			Output:       plotOutput,
			DirQualified: dirQualified,
		})
		if err != nil {
			return err
		}
		return plot.Render(cmd.Context(), spec)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().BoolVar(&scaleDiagram, "scale", false, "normalize each series to its own y-scale")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "output file (.png or .svg); default is an interactive window")
	plotCmd.Flags().BoolVar(&dirQualified, "dir", false, "prefix series labels with their parent directory")
}
