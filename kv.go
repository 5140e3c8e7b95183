package chatroom

// KeyValueStore is an opaque, synchronous key-value store. Implementations
// decide how values are encoded and secured; callers treat it as trusted.
type KeyValueStore interface {
	// Get returns the value for key or ErrNotFound. Values that cannot be
	// decoded are reported as ErrNotFound.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}
