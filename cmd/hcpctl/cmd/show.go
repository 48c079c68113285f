package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var showSuffixes = []string{"_num_groups", "_ll", "_group_size", "_edges", "_pairs", "_configs"}

var showCmd = &cobra.Command{
	Use:   "show <directory> <base-name>",
	Short: "Print the last recorded sample from a flat-file snapshot",
	Long: `show reads the six flat snapshot files baseName+suffix written by the
flatfile sink under directory and prints the final recorded sample from
each, one field per line.`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	directory, baseName := args[0], args[1]

	for _, suffix := range showSuffixes {
		path := filepath.Join(directory, baseName+suffix)
		line, count, err := lastLine(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		fmt.Printf("%-12s (%d samples): %s\n", strings.TrimPrefix(suffix, "_"), count, line)
	}
	return nil
}

func lastLine(path string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	var last string
	var count int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		last = scanner.Text()
		count++
	}
	if err := scanner.Err(); err != nil {
		return "", 0, err
	}
	return last, count, nil
}
