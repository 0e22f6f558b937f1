// Package schemas embeds the SQL migration files for the MySQL deployment.
package schemas

import "embed"

// Migrations holds the migration files, ordered by filename.
//
//go:embed migrations/*.sql
var Migrations embed.FS
