// Package tvpstage is a client-side staging library for SQL Server
// table-valued parameters (TVPs).
//
// A TVP is a multi-row, multi-column value sent to the server as a single
// parameter. Before it can be encoded onto the wire, the client has to
// assemble it in memory: declare the columns with their SQL types, then feed
// rows whose cells are validated and converted into canonical in-memory
// representations. Variable-width columns (DECIMAL, VARBINARY, the CHAR
// family) additionally track the widest value seen so far, because the wire
// encoder sizes its buffers from column metadata.
//
// The library is organized as:
//
//   - pkg/sqltype: the SQL type-category vocabulary
//   - pkg/tvp: the staging table itself (columns, coercion, rows)
//   - pkg/loader: bulk CSV staging on top of pkg/tvp
//   - pkg/config: YAML configuration for tables and loaders
//   - cmd/tvpstage: CLI for staging files and inspecting metadata
//
// The wire encoder that consumes a staged table is intentionally out of
// scope; pkg/tvp only exposes the read contract an encoder needs (ordered
// column metadata and insertion-ordered row iteration).
package tvpstage
