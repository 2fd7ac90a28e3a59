// Package password hashes and verifies user passwords with Argon2id.
//
// Hashes are stored in PHC string format:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>
//
// The cost parameters are fixed constants of this package. Verify recomputes
// the key with those constants and compares in constant time; any decoding
// problem is reported as a plain mismatch, so callers cannot tell a corrupted
// hash from a wrong password.
//
// Each computation allocates about 19 MiB. Hasher bounds how many run at
// once; callers wait for a slot while their context is alive.
//
//	h := password.NewHasher()
//	encoded, err := h.Hash(ctx, "secret123")
//	ok := h.Verify(ctx, encoded, "secret123")
package password
