package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drpaneas/repolens/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			srv := server.New(ctx, a.analyzer(), a.advisor(), a.profiler(), server.Options{
				RateLimit:   a.cfg.RateLimit,
				RateBurst:   a.cfg.RateBurst,
				CORSOrigins: a.cfg.CORSOrigins,
			})
			return srv.Run(ctx, a.cfg.Addr)
		},
	}
	f := cmd.Flags()
	f.String("addr", "", "listen address (default :8080)")
	f.Float64("rate-limit", 0, "requests per second allowed per client IP")
	f.Int("rate-burst", 0, "request burst allowed per client IP")
	for _, name := range []string{"addr", "rate-limit", "rate-burst"} {
		_ = a.v.BindPFlag(name, f.Lookup(name))
	}
	return cmd
}
