package keys

// FilterPolicy is the user-supplied filter contract: it may exhibit
// false positives but never false negatives.
type FilterPolicy interface {
	Name() string
	// CreateFilter appends an encoded filter for the given keys to dst
	// and returns the extended slice.
	CreateFilter(keys [][]byte, dst []byte) []byte
	KeyMayMatch(key, filter []byte) bool
}

// FilterPolicyAdapter wraps a user FilterPolicy so it only ever sees
// user keys, never internal keys. It builds a projected copy of the
// key slice rather than mutating the caller's array in place, so the
// choice of projection strategy never leaks into the on-disk filter
// bytes.
type FilterPolicyAdapter struct {
	User FilterPolicy
	Mode Mode
}

// NewFilterPolicyAdapter builds the adapter for the given user policy
// and mode.
func NewFilterPolicyAdapter(user FilterPolicy, mode Mode) *FilterPolicyAdapter {
	return &FilterPolicyAdapter{User: user, Mode: mode}
}

// Name is the user policy's name: the internal layer is invisible on
// disk.
func (f *FilterPolicyAdapter) Name() string { return f.User.Name() }

func (f *FilterPolicyAdapter) CreateFilter(internalKeys [][]byte, dst []byte) []byte {
	projected := make([][]byte, len(internalKeys))
	for i, k := range internalKeys {
		projected[i] = ExtractUserKey(k, f.Mode)
	}
	return f.User.CreateFilter(projected, dst)
}

func (f *FilterPolicyAdapter) KeyMayMatch(internalKey, filter []byte) bool {
	return f.User.KeyMayMatch(ExtractUserKey(internalKey, f.Mode), filter)
}

var _ FilterPolicy = (*FilterPolicyAdapter)(nil)
