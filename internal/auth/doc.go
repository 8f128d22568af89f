// Package auth implements the authentication core: password policy,
// credential hashing, signed bearer tokens, and the in-memory session
// registry that enforces one active session per account.
package auth
