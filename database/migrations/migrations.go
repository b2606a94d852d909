// Package migrations embeds the versioned schema for every supported dialect.
package migrations

import "embed"

// FS holds postgres/*.sql and oracle/*.sql in golang-migrate naming ({version}_{title}.{up|down}.sql).
//
//go:embed postgres/*.sql oracle/*.sql
var FS embed.FS
