package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/forcetree/internal/ui"
	"github.com/ziadkadry99/forcetree/internal/view"
)

var inspectCollapseAll bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the dataset tree and the flat graph a fresh view renders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root, err := loadDataset(cfg)
		if err != nil {
			return err
		}

		opts := cfg.ViewOptions()
		if inspectCollapseAll {
			opts.CloseAllOnLoad = true
		}
		ctrl := view.New(root, nil, opts)
		frame, err := ctrl.Update()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		ui.Banner(out, cfg.DataPath)
		ui.Tree(out, root)
		fmt.Fprintln(out)

		rows := make([][]string, 0, len(frame.Nodes))
		for _, n := range frame.Nodes {
			avg := "-"
			if n.Average != nil {
				avg = strconv.FormatFloat(*n.Average, 'f', 1, 64)
			}
			rows = append(rows, []string{
				strconv.Itoa(n.ID),
				n.Name,
				n.State,
				strconv.FormatFloat(n.Radius, 'f', 2, 64),
				avg,
				ui.Swatch(n.Color) + " " + n.Color,
			})
		}
		ui.Table(out, []string{"ID", "NAME", "STATE", "RADIUS", "AVERAGE", "COLOR"}, rows)

		b := frame.Bounds
		fmt.Fprintf(out, "\n%d nodes, %d links, root #%d\n", len(frame.Nodes), len(frame.Links), frame.RootID)
		if b.General.Set {
			fmt.Fprintf(out, "color domain [%g, %g]", b.General.Min, b.General.Max)
			if b.BranchRoot.Set {
				fmt.Fprintf(out, ", branch roots [%g, %g]", b.BranchRoot.Min, b.BranchRoot.Max)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectCollapseAll, "collapse-all", false, "collapse branch roots as on load")
	rootCmd.AddCommand(inspectCmd)
}
