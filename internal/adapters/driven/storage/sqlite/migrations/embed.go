// Package migrations embeds the versioned schema files for the fetch
// cache database.
package migrations

import "embed"

// FS holds the .up.sql and .down.sql migration pairs.
//
//go:embed *.sql
var FS embed.FS
