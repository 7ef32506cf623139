// Package migrations embeds the SQL migrations so the binaries and the
// integration tests do not depend on the working directory.
package migrations

import "embed"

// FS holds every *.sql migration
//
//go:embed *.sql
var FS embed.FS
