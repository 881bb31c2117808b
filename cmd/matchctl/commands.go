package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timmy/solarmatch/internal/app"
	"github.com/timmy/solarmatch/internal/config"
	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/matching"
)

const cliName = "matchctl"

// withApp loads config, opens dependencies and runs fn with them.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}
	l := app.NewLogger(cfg.Logging, cliName)
	defer l.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          cliName,
		Short:        "matchctl scores professionals against solar jobs and manages the resulting matches",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "config file (default is configs/config.yaml)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")

	root.AddCommand(newFindCmd(), newRematchCmd(), newListCmd(), newStatusCmd(), newReportCmd())
	return root
}

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find, persist and print matches for a job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobID, _ := cmd.Flags().GetInt64("job")
			overrides, err := overridesFromFlags(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				results, err := a.Matches.FindMatches(ctx, jobID, overrides)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), results)
			})
		},
	}

	f := cmd.Flags()
	f.Int64("job", 0, "job ID to match")
	f.Float64("distance-weight", matching.DefaultDistanceWeight, "weight of the distance score")
	f.Float64("expertise-weight", matching.DefaultExpertiseWeight, "weight of the expertise score")
	f.Float64("availability-weight", matching.DefaultAvailabilityWeight, "weight of the availability score")
	f.Float64("rating-weight", matching.DefaultRatingWeight, "weight of the rating score")
	f.Float64("price-weight", matching.DefaultPriceWeight, "weight of the price score")
	f.Float64("min-score", matching.DefaultMinimumMatchScore, "minimum total score for a match")
	f.Int("max-matches", matching.DefaultMaxMatches, "maximum number of matches returned")
	f.Bool("all", false, "include unverified professionals")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

// overridesFromFlags sets only the criteria the user passed explicitly.
func overridesFromFlags(cmd *cobra.Command) (*matching.Overrides, error) {
	f := cmd.Flags()
	o := &matching.Overrides{}

	floats := map[string]**float64{
		"distance-weight":     &o.DistanceWeight,
		"expertise-weight":    &o.ExpertiseWeight,
		"availability-weight": &o.AvailabilityWeight,
		"rating-weight":       &o.RatingWeight,
		"price-weight":        &o.PriceWeight,
		"min-score":           &o.MinimumMatchScore,
	}
	for name, dst := range floats {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetFloat64(name)
		if err != nil {
			return nil, err
		}
		*dst = &v
	}

	if f.Changed("max-matches") {
		v, err := f.GetInt("max-matches")
		if err != nil {
			return nil, err
		}
		o.MaxMatches = &v
	}
	if f.Changed("all") {
		all, err := f.GetBool("all")
		if err != nil {
			return nil, err
		}
		verifiedOnly := !all
		o.VerifiedOnly = &verifiedOnly
	}
	return o, nil
}

func newRematchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rematch",
		Short: "Run matching with default criteria for every pending job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				stats, err := a.Matches.RematchPending(ctx, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
	cmd.Flags().Int("limit", 0, "maximum number of pending jobs to process (0 means all)")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored matches for a job or a professional",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobID, _ := cmd.Flags().GetInt64("job")
			proID, _ := cmd.Flags().GetInt64("professional")
			if (jobID > 0) == (proID > 0) {
				return errors.New("exactly one of --job or --professional is required")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if jobID > 0 {
					results, err := a.Matches.GetMatchesForJob(ctx, jobID)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), results)
				}
				results, err := a.Matches.GetMatchesForProfessional(ctx, proID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), results)
			})
		},
	}
	cmd.Flags().Int64("job", 0, "job ID")
	cmd.Flags().Int64("professional", 0, "professional ID")
	return cmd
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Set the status of a match",
		RunE: func(cmd *cobra.Command, _ []string) error {
			matchID, _ := cmd.Flags().GetInt64("match")
			status, _ := cmd.Flags().GetString("set")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				result, err := a.Matches.UpdateMatchStatus(ctx, matchID, domain.MatchStatus(strings.ToUpper(status)))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().Int64("match", 0, "match ID")
	cmd.Flags().String("set", "", "new status: SUGGESTED, ACCEPTED, REJECTED or WITHDRAWN")
	_ = cmd.MarkFlagRequired("match")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report KEY",
		Short: "Print an archived ranking report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if a.Archive == nil {
					return fmt.Errorf("ranking archive is disabled; set archive.enabled")
				}
				report, err := a.Archive.Load(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	return cmd
}
