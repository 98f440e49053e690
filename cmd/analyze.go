package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/drpaneas/repolens/internal/analyzer"
	"github.com/drpaneas/repolens/internal/config"
	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/report"
)

type repoRef struct {
	owner string
	repo  string
}

func parseRepos(args []string) ([]repoRef, error) {
	refs := make([]repoRef, 0, len(args))
	for _, arg := range args {
		owner, repo, err := ghcrawl.ParseRepoLink(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, repoRef{owner: owner, repo: repo})
	}
	return refs, nil
}

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze owner/repo [owner/repo...]",
		Short: "Analyze one or more repositories and print their reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := parseRepos(args)
			if err != nil {
				return err
			}
			useLLM, _ := cmd.Flags().GetBool("llm")

			reports, analyzeErr := analyzeAll(cmd, a.analyzer(), refs, useLLM, a.cfg.Concurrency)
			if len(reports) > 0 {
				if err := render(cmd.OutOrStdout(), a.cfg.Format, report.NewGenerator(a.cfg.OutputDir), reports); err != nil {
					return errors.Join(err, analyzeErr)
				}
			}
			return analyzeErr
		},
	}
	f := cmd.Flags()
	f.Bool("llm", false, "grade commit, README and review quality with the LLM")
	f.String("output", "", "directory for markdown reports")
	f.Int("concurrency", 0, "repositories analyzed in parallel")
	_ = a.v.BindPFlag("output-dir", f.Lookup("output"))
	_ = a.v.BindPFlag("concurrency", f.Lookup("concurrency"))
	return cmd
}

// analyzeAll runs independent analyses with at most limit in flight. It
// returns the successful reports in argument order; a failed repository is
// logged and skipped, and all failures are joined into the returned error.
func analyzeAll(cmd *cobra.Command, an *analyzer.Analyzer, refs []repoRef, useLLM bool, limit int) ([]*analyzer.Report, error) {
	ctx := cmd.Context()
	reports := make([]*analyzer.Report, len(refs))
	errs := make([]error, len(refs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			r, err := an.Analyze(ctx, ref.owner, ref.repo, useLLM)
			if err != nil {
				slog.Error("analysis failed", "repo", ref.owner+"/"+ref.repo, "error", err)
				errs[i] = err
				return nil
			}
			r.Narrative = an.Narrate(ctx, r)
			reports[i] = r
			return nil
		})
	}
	_ = g.Wait()

	done := make([]*analyzer.Report, 0, len(refs))
	for _, r := range reports {
		if r != nil {
			done = append(done, r)
		}
	}
	return done, errors.Join(errs...)
}

func render(w io.Writer, format string, gen *report.Generator, reports []*analyzer.Report) error {
	switch format {
	case config.FormatJSON:
		if len(reports) == 1 {
			return report.WriteJSON(w, reports[0])
		}
		return report.WriteJSON(w, reports)
	case config.FormatMarkdown:
		for _, r := range reports {
			path, err := gen.Write(r)
			if err != nil {
				return fmt.Errorf("writing report for %s: %w", r.FullName, err)
			}
			fmt.Fprintln(w, path)
		}
		slog.Info("done", "reports_written", len(reports))
		return nil
	default:
		for _, r := range reports {
			if err := report.WriteText(w, r); err != nil {
				return err
			}
		}
		return nil
	}
}
