package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var indexFormat string

// indexCmd prints the id to file name mapping of every page on disk
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Print the product id to edit page mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := application.Store.Index()
		if err != nil {
			return err
		}
		switch indexFormat {
		case "json":
			return writeIndexJSON(cmd.OutOrStdout(), index)
		case "js":
			return writeIndexJS(cmd.OutOrStdout(), index)
		default:
			return fmt.Errorf("invalid format %q. Must be json or js", indexFormat)
		}
	},
}

// nextIDCmd prints the id the next new product should get
var nextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Print one more than the highest product id on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := application.Store.NextID()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexFormat, "format", "json", "Output format: json or js")
}

func sortedIDs(index map[int]string) []int {
	ids := make([]int, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func writeIndexJSON(w io.Writer, index map[int]string) error {
	out := make(map[string]string, len(index))
	for id, filename := range index {
		out[strconv.Itoa(id)] = filename
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeIndexJS writes the mapping as the productEditPages constant the admin list page loads
func writeIndexJS(w io.Writer, index map[int]string) error {
	if _, err := fmt.Fprintln(w, "const productEditPages = {"); err != nil {
		return err
	}
	for _, id := range sortedIDs(index) {
		name, err := json.Marshal(index[id])
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    %d: %s,\n", id, name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "};")
	return err
}
