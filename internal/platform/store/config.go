package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName is reported to postgres as application_name
	AppName string

	PG PGConfig
}

// PGConfig configures the postgres pool and its query log
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL logs every statement; SlowQueryMs alone only logs slow ones
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries and PingTimeout bound the readiness wait in Open
	ConnectRetries int
	PingTimeout    time.Duration
}

func (c PGConfig) slow() time.Duration { return time.Duration(c.SlowQueryMs) * time.Millisecond }
