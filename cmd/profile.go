package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drpaneas/repolens/internal/config"
	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/report"
)

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile user",
		Short: "Score a GitHub account from its profile and recent repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := ghcrawl.ParseProfileLink(args[0])
			if err != nil {
				return err
			}
			p := a.profiler()
			r, err := p.Analyze(cmd.Context(), username)
			if err != nil {
				return err
			}
			r.Narrative = p.Narrate(cmd.Context(), r)
			if a.cfg.Format == config.FormatJSON {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			return report.WriteProfileText(cmd.OutOrStdout(), r)
		},
	}
}
