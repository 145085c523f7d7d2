// Package server holds the HTTP API configuration.
//
// The API is an optional front end started by the "start" command. It exposes the
// find and build steps as endpoints so a browser or script can drive a pack session.
//
// # Configuration
//
// Host and port (loopback by default), the API key checked by the auth middleware,
// and the request body limit. Validate rejects an empty API key on any host other
// than loopback.
package server
