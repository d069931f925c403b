package commands

import "github.com/spf13/cobra"

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize the catalog and order log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, a.tracker.DashboardStats())
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes across the catalog and order log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := a.tracker.Activity(limit)
			if err != nil {
				return err
			}
			return a.render(cmd, activity)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of most recent events to show (0 for all)")
	return cmd
}
