package migrations

import "embed"

// FS holds the SQL migration files of this directory. The golang-migrate
// iofs driver reads them from here at startup.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version Migrate brings a database up to.
const Version = 1
