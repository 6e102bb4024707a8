package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/holekit/heap/hole"
	"github.com/joshuapare/holekit/internal/format"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report the allocator's block geometry on this platform",
		Long: `The info command prints the machine word size and the minimum block size.
Every allocation is at least the minimum block size, since a freed block must
be able to hold a hole header (size and next pointer).

Example:
  holectl info
  holectl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

type platformInfo struct {
	Arch        string  `json:"arch"`
	WordSize    uintptr `json:"word_size"`
	HeaderWords int     `json:"header_words"`
	MinSize     uintptr `json:"min_size"`
}

func runInfo() error {
	info := platformInfo{
		Arch:        runtime.GOARCH,
		WordSize:    format.WordSize,
		HeaderWords: format.HeaderWords,
		MinSize:     hole.MinSize(),
	}
	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nAllocator Geometry:\n")
	printInfo("  Arch: %s\n", info.Arch)
	printInfo("  Word size: %d bytes\n", info.WordSize)
	printInfo("  Header: %d words\n", info.HeaderWords)
	printInfo("  Minimum block: %d bytes\n", info.MinSize)
	return nil
}
