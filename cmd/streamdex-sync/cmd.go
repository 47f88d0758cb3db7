package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"streamdex/internal/core/filter"
	modkit "streamdex/internal/modkit"
	"streamdex/internal/modkit/module"
	"streamdex/internal/platform/config"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/platform/logger"
	"streamdex/internal/platform/net/http/bind"
	"streamdex/internal/services/api/catalog/domain"
	catalogmod "streamdex/internal/services/api/catalog/module"

	"github.com/spf13/cobra"
)

// sourceFactory builds the video source from config so tests can swap it
type sourceFactory func(config.Conf) domain.VideoSource

type flags struct {
	channel   string
	primary   string
	secondary string
	output    string
	timeout   time.Duration
	query     domain.ListQuery

	// upper bounds only apply when their flag is given
	maxMinutes float64
	maxFriends float64
}

func newRootCmd(newSource sourceFactory) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "streamdex-sync",
		Short:         "Reconcile a channel's broadcasts with its tag tables and print the result",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("max") {
				f.query.MaxMinutes = &f.maxMinutes
			}
			if cmd.Flags().Changed("max-friends") {
				f.query.MaxFriends = &f.maxFriends
			}
			return run(cmd.Context(), cmd.OutOrStdout(), newSource, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.channel, "channel", "", "channel id (default YT_CHANNEL_ID)")
	fs.StringVar(&f.primary, "primary", "", "primary tag table path or url (default TAGS_PRIMARY)")
	fs.StringVar(&f.secondary, "secondary", "", "secondary tag table path or url (default TAGS_SECONDARY)")
	fs.StringVarP(&f.output, "output", "o", "table", "output format: table or json")
	fs.DurationVar(&f.timeout, "timeout", 2*time.Minute, "overall deadline")

	fs.StringVarP(&f.query.Q, "query", "q", "", "text search over title, channel and date")
	fs.StringSliceVar(&f.query.Include, "include", nil, "tags that must be truthy")
	fs.StringSliceVar(&f.query.Exclude, "exclude", nil, "tags that must not be truthy")
	fs.StringVar(&f.query.Mode, "mode", "", "duration mode: total, preMarker or postMarker")
	fs.Float64Var(&f.query.MinMinutes, "min", 0, "minimum minutes")
	fs.Float64Var(&f.maxMinutes, "max", 0, "maximum minutes, open when unset")
	fs.Float64Var(&f.query.MinFriends, "min-friends", 0, "minimum friend count")
	fs.Float64Var(&f.maxFriends, "max-friends", 0, "maximum friend count, open when unset")
	fs.StringVar(&f.query.Sort, "sort", "newest", "newest, oldest, shortest or longest")

	return cmd
}

func run(ctx context.Context, out io.Writer, newSource sourceFactory, f flags) error {
	if f.output != "table" && f.output != "json" {
		return perr.InvalidArgf("unknown output %q", f.output)
	}
	if err := bind.Validate(f.query); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cfg := config.New()
	opts := catalogmod.FromConfig(cfg)
	if f.channel != "" {
		opts.ChannelID = f.channel
	}
	if f.primary != "" {
		opts.PrimaryLoc = f.primary
	}
	if f.secondary != "" {
		opts.SecondaryLoc = f.secondary
	}
	if opts.ChannelID == "" {
		return perr.InvalidArgf("channel id is required (--channel or YT_CHANNEL_ID)")
	}
	deps := modkit.Deps{Cfg: cfg, Log: *logger.Named("sync")}
	m := catalogmod.New(deps, opts, modkit.WithPorts(catalogmod.Ports{Source: newSource(cfg)}))
	svc := module.MustPortsOf[catalogmod.Ports](m).Service

	if _, err := svc.Reload(ctx); err != nil {
		return err
	}
	res, err := svc.List(ctx, f.query)
	if err != nil {
		return err
	}

	if f.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printTable(out, res)
}

func printTable(out io.Writer, res domain.ListResult) error {
	if res.Count == 0 {
		_, err := fmt.Fprintln(out, res.Empty)
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDURATION\tFRIENDS\tTAGS\tTITLE\tURL")
	for _, s := range res.Streams {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%s\t%s\n",
			s.Date, s.Duration, s.FriendCount, tagList(s.Tags), s.Title, s.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, res.CountText)
	return err
}

// tagList renders the truthy tags of a stream in a stable order
func tagList(tags map[string]string) string {
	var names []string
	for k, v := range tags {
		if filter.Truthy(v) {
			names = append(names, k)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}
