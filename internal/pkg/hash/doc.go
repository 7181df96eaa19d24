// Package hash provides helpers for computing and verifying keyed hashes.
//
// Typical usage is webhook signature verification: compute the HMAC of the
// raw payload and compare it against the signature header in constant time.
package hash
