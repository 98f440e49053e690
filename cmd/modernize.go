package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drpaneas/repolens/internal/config"
	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/report"
)

func newModernizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "modernize owner/repo",
		Short: "Suggest modern replacements for a repository's Python dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := ghcrawl.ParseRepoLink(args[0])
			if err != nil {
				return err
			}
			r := a.advisor().Analyze(cmd.Context(), owner, repo)
			if a.cfg.Format == config.FormatJSON {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			return report.WriteModernizationText(cmd.OutOrStdout(), r)
		},
	}
}
