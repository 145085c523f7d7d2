// Package songdb matches difficulty table charts against the beatoraja song
// database.
//
// The song table is queried in batches of at most MaxBatchSize hashes
// (SELECT md5, path FROM song WHERE md5 IN (...)). A row counts only when its path
// names a regular file on disk; the folder holding that file covers the row's hash.
// Relative paths, as beatoraja writes them, are resolved against the directory of
// the song database unless a songs root is configured.
//
// Open validates the path, connects read-only and runs VerifySchema, which rejects
// databases whose song table lacks the md5 or path columns.
package songdb
