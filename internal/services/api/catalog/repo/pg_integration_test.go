//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"testing"
	"time"

	"streamdex/internal/core/stream"
	"streamdex/internal/platform/store"
	kit "streamdex/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestPG_LoadsSheetTable_Integration(t *testing.T) {
	dsn := kit.Postgres(t, "streamdex")

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}},
		store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	ddl := []string{
		`create table stream_tags (
			stream_link text primary key,
			zatsu_start text,
			friend_count int,
			"Visual Novel" boolean,
			horror text
		)`,
		`insert into stream_tags (stream_link, zatsu_start, friend_count, "Visual Novel", horror) values
			('https://youtu.be/aaaaaaaaaaa', '1:00:00', 3, true, null),
			('https://www.youtube.com/watch?v=bbbbbbbbbbb', null, null, null, '1')`,
	}
	for _, q := range ddl {
		if _, err := st.PG.Exec(ctx, q); err != nil {
			t.Fatalf("exec %q: %v", q, err)
		}
	}

	tbl, err := NewPG("public.stream_tags", "stream_link").Bind(st.PG).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}

	rows := stream.Rows(tbl, stream.PrimarySchema())
	if len(rows) != 2 {
		t.Fatalf("typed rows = %d, want 2", len(rows))
	}
	byID := map[string]stream.TagRow{}
	for _, r := range rows {
		byID[r.VideoID] = r
	}
	first, ok := byID["aaaaaaaaaaa"]
	if !ok || first.FriendCount() != 3 || first.MarkerMinutes() != 60 {
		t.Fatalf("first = %+v", first)
	}
	if first.Tags["Visual Novel"] != "true" || first.Tags["horror"] != "" {
		t.Fatalf("first tags = %v", first.Tags)
	}
	second, ok := byID["bbbbbbbbbbb"]
	if !ok || second.FriendCount() != 1 || second.Tags["horror"] != "1" {
		t.Fatalf("second = %+v", second)
	}
}

func TestPG_MissingTable_Integration(t *testing.T) {
	dsn := kit.Postgres(t, "streamdex")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 1}},
		store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if _, err := NewPG("nope", "").Bind(st.PG).Load(ctx); err == nil {
		t.Fatalf("expected error for missing table")
	}
}
