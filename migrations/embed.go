// Package migrations embeds the versioned schema scripts applied by golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
