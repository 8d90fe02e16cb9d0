package store

// Bucket namespaces keys within the single embedded goleveldb keyspace,
// giving the "blocks" and "chainstate" logical trees spec.md §3 describes
// without requiring two separate database handles. Modeled on the
// teacher's database2.MakeBucket/Bucket.Key pattern (see dbaccess/*.go).
type Bucket struct {
	prefix []byte
}

// MakeBucket returns a bucket namespaced by name.
func MakeBucket(name string) Bucket {
	prefix := make([]byte, 0, len(name)+1)
	prefix = append(prefix, []byte(name)...)
	prefix = append(prefix, '/')
	return Bucket{prefix: prefix}
}

// Key returns suffix prefixed with this bucket's namespace.
func (b Bucket) Key(suffix []byte) []byte {
	key := make([]byte, 0, len(b.prefix)+len(suffix))
	key = append(key, b.prefix...)
	key = append(key, suffix...)
	return key
}

// Path returns the raw prefix, for range scans over every key in the
// bucket.
func (b Bucket) Path() []byte {
	return b.prefix
}
