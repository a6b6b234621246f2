// Package migrations embeds the goose SQL migrations so binaries carry their
// schema with them.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
