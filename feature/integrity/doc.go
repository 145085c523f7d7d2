// Package integrity provides health checks for the pieces a pack build depends on.
//
// # Checks Provided
//
//   - SongDB: Compares the song table of a beatoraja database with the Song model
//     (columns and compatible types) and counts its rows.
//   - Storage: Verifies the publishing bucket is reachable and lists the packs
//     already published under the configured prefix.
//   - Destination: Verifies the pack destination directory exists or can be
//     created, and is writable.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (songdb only when ?db_path= is given).
//   - GET /integrity/songdb?db_path= : Runs the song database check.
//   - GET /integrity/storage : Runs the storage check.
//   - GET /integrity/destination : Runs the destination check.
package integrity
