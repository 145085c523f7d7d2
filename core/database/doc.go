// Package database opens the song database and inspects its schema.
//
// It wraps GORM. The default driver is sqlite, used for beatoraja's songdata.db,
// which is opened read-only through a "file:...?mode=ro" URI so a mistyped path
// fails instead of creating an empty database. The mysql driver serves setups that
// mirror the song table to a server.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns (PRAGMA table_info on sqlite, SHOW COLUMNS
// on mysql). HasColumns reports which required columns are absent; the matcher uses
// it to reject databases that are not beatoraja song databases.
//
// # Usage
//
//	db, err := database.Connect(database.Config{Driver: "sqlite", Name: path, ReadOnly: true})
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
//
//	missing, err := database.HasColumns(db, "song", "md5", "path")
package database
