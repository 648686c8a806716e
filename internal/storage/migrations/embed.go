package migrations

import "embed"

// PostgresFS holds the schema for the relational stores: tokens,
// analysis, trades, blacklists.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS holds the schema for the price snapshot timeseries.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
