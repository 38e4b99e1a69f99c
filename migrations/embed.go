// Package migrations embeds the goose SQL migrations so the server binary
// can bring the schema up to date at startup without shipping loose files.
package migrations

import "embed"

// FS holds the embedded migration files, applied with goose at startup.
//
//go:embed *.sql
var FS embed.FS
