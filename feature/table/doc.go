// Package table downloads BMS difficulty tables.
//
// A table is published as an HTML page carrying
//
//	<meta name="bmstable" content="header.json">
//
// The header JSON names the level symbol, the optional level_order and the data_url
// of the chart list. Both references are resolved against the page URL. The chart
// list is an array of {md5, title, level} objects; levels may be strings or numbers.
//
// Loader.Load returns a Table whose Charts are deduplicated by hash: the first
// occurrence keeps its position and the last one wins for title and level. Entries
// without an md5 are skipped and counted.
//
// Transport failures and non-200 statuses are apperr fetch errors; a missing meta
// tag, missing header fields or malformed JSON are parse errors.
package table
