// Package randomid generates unguessable identifiers and session tokens.
//
// Values are drawn from crypto/rand and encoded as lower-case base32 without
// padding, so they are safe in URLs, cookies and database keys:
//
//	userID := randomid.New()   // 24 chars, 120 bits
//	token := randomid.Token()  // 32 chars, 160 bits
//
// New and Token panic with ErrEntropyExhausted when the random source fails.
// Use Generate to handle that condition explicitly.
package randomid
