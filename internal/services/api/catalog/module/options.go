package module

import (
	"strings"

	"streamdex/internal/core/stream"
	"streamdex/internal/platform/config"
)

// Options controls which channel and tag tables the catalog reconciles
type Options struct {
	ChannelID string

	// PrimaryLoc and SecondaryLoc are file paths or http(s) urls, blank disables
	PrimaryLoc   string
	SecondaryLoc string

	// Source selects file or http (both resolved from the location) or pg
	Source           string
	PGPrimaryTable   string
	PGSecondaryTable string
	PGOrderBy        string

	// CountColumns overrides the secondary count columns
	CountColumns []string
}

// FromConfig reads YT_ and TAGS_ keys
func FromConfig(cfg config.Conf) Options {
	yt := cfg.Prefix("YT_")
	t := cfg.Prefix("TAGS_")
	return Options{
		ChannelID:        yt.MayString("CHANNEL_ID", ""),
		PrimaryLoc:       t.MayString("PRIMARY", ""),
		SecondaryLoc:     t.MayString("SECONDARY", ""),
		Source:           strings.ToLower(t.MayEnum("SOURCE", "file", "file", "http", "pg")),
		PGPrimaryTable:   t.MayString("PG_PRIMARY_TABLE", "stream_tags"),
		PGSecondaryTable: t.MayString("PG_SECONDARY_TABLE", ""),
		PGOrderBy:        t.MayString("PG_ORDER_BY", ""),
		CountColumns:     t.MayCSV("SECONDARY_COUNT_COLUMNS", nil),
	}
}

// secondarySchema applies CountColumns over the default secondary schema
func (o Options) secondarySchema() stream.Schema {
	s := stream.SecondarySchema()
	if len(o.CountColumns) > 0 {
		s.CountColumns = o.CountColumns
	}
	return s
}
