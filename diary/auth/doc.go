// Package auth implements credential handling for the diary service:
// username/password shape validation, argon2id password hashing, and the
// register/login flows on top of the diary store.
//
// The one property worth spelling out: login never tells the caller
// whether the username exists. A missing user, a malformed stored hash
// and a wrong password all surface as the same ErrInvalidCredentials.
package auth
