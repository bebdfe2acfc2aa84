// Package migrations embeds the SQL files goose applies at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
