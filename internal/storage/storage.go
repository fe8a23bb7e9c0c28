package storage

// KV is a key-value blob store. Each write is independent and immediate.
type KV interface {
	// Get returns the value for key and whether it was present
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
	Close() error
}
