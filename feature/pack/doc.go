// Package pack builds table packs: directories holding every chart folder a
// difficulty table needs, copied out of the player's song library.
//
// # Flow
//
// Service.FindSongs downloads the table, matches its hashes against the song
// database, runs reconcile.Reconcile and remembers the result in a
// reconcile.Session keyed by (db path, table url). Service.MakePack hands the
// remembered folders to the Builder, which creates <destination>/<unix>_<name> and
// copies each folder into it under a collision-free name (see TargetNames). With
// storage enabled the Publisher then uploads the finished pack to S3/MinIO.
//
// Only one find or build runs at a time; a concurrent call fails with ErrBusy.
//
// # HTTP
//
//   - POST /pack/find    {"db_path": "...", "table_url": "..."}
//   - POST /pack/build   same body; must match the last find
//   - GET  /pack/session the remembered result
//
// Responses carry the status and log lines the operation reported.
package pack
