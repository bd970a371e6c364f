// Package migrations embeds the goose SQL migration files.
package migrations

import "embed"

// FS contains all SQL migrations, applied by platform/db.RunMigrations.
//
//go:embed *.sql
var FS embed.FS
