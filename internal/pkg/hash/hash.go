package hash

// Hash hashes secrets and verifies plaintexts against stored hashes.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
