// Package blog defines the BlogPost resource: the stored record, the JSON wire
// representation returned by the API, the create and partial update payloads,
// and the typed errors the API maps to HTTP responses.
//
// The stored author is a {firstName, lastName} composite; clients only ever
// see the combined display string "firstName lastName".
package blog
