// Package config provides configuration management for table-pack-maker.
//
// Configuration comes from environment variables, optionally seeded by a .env file,
// with defaults declared on the struct fields through `default` tags.
//
// # Configuration Structure
//
//   - Server: HTTP API port, API key, body limit
//   - Log: logging level and format
//   - Database: song database driver and connection settings
//   - Table: difficulty table download settings
//   - Pack: pack destination, pack name, lookup batch size
//   - Storage: optional S3/MinIO publishing of built packs
//
// Nested keys map to upper-case environment variables joined by underscores, e.g.
// PACK_DESTINATION or STORAGE_ENABLED.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pack.Destination)
package config
