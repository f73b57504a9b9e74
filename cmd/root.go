// Package cmd provides the colorquant command line.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colorquant",
		Short: "colorquant - parallel k-means colour quantization",
		Long: `colorquant clusters the colours of an image with an iterative, parallel
MapReduce k-means and recolours every pixel with its nearest centroid.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRunCmd(), newSampleCmd())
	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
