// Package middleware groups the Fiber middleware used by the HTTP API.
//
//   - auth: rejects requests without the configured X-API-Key. An empty key turns
//     the check off, which is the default for a local single-user setup.
//   - rayid: tags each request with an X-Ray-ID (reused from the caller when sent)
//     so pack session logs can be correlated with the request that produced them.
//
// rayid is registered before auth so rejected requests are traceable too.
package middleware
