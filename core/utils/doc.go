// Package utils provides small helpers shared across packages: value-to-string
// conversion for loosely typed JSON/SQL values, and generic batching used to keep
// "IN (...)" lookups under the store's bound-parameter limit.
package utils
