package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fileconv/fileconv/pkg/dump"
	"github.com/fileconv/fileconv/pkg/load"
)

// newFormatsCmd creates the formats command, which lists every registered
// format and whether it can be read, written, or both.
func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printFormats()
			return nil
		},
	}
}

func printFormats() {
	loaders := load.NewRegistry()
	dumpers := dump.NewRegistry()

	type row struct {
		ext, name, direction string
	}
	byExt := map[string]*row{}
	for ext, l := range loaders {
		byExt[ext] = &row{ext: ext, name: l.Name(), direction: "read"}
	}
	for ext, factory := range dumpers {
		if r, ok := byExt[ext]; ok {
			r.direction = "read/write"
			continue
		}
		byExt[ext] = &row{ext: ext, name: factory().Name(), direction: "write"}
	}

	rows := make([]*row, 0, len(byExt))
	for _, r := range byExt {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ext < rows[j].ext })

	fmt.Println(StyleTitle.Render("Supported formats"))
	for _, r := range rows {
		fmt.Printf("  %-7s %-15s %s\n", r.ext, StyleValue.Render(r.name), StyleDim.Render(r.direction))
	}
}
