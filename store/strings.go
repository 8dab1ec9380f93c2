package store

import "strconv"

// SetString writes key as a string entry, replacing whatever was there.
// Values at or above bigStringThreshold spill into the shard's bigcache
// instance instead of living inline on the Entry; Entry.Str stays empty
// for those keys and Get falls back to bigcache.
func (s *Shard) SetString(key, value string) {
	e := &Entry{Key: key, Typ: TypeString}
	cost := int64(len(key) + len(value))
	if len(value) >= bigStringThreshold && s.big != nil {
		_ = s.big.Set(key, []byte(value))
	} else {
		e.Str = value
	}
	s.putEntry(e, cost)
}

// SetStringXX writes key only if it already exists as a string (xx semantics).
func (s *Shard) SetStringXX(key, value string) error {
	e, ok := s.lookup(key)
	if !ok {
		return ErrNotFound
	}
	if e.Typ != TypeString {
		return ErrWrongType
	}
	s.SetString(key, value)
	return nil
}

// SetStringNX writes key only if absent (nx semantics), reporting whether it wrote.
func (s *Shard) SetStringNX(key, value string) bool {
	if _, ok := s.lookup(key); ok {
		return false
	}
	s.SetString(key, value)
	return true
}

// GetString returns the string value of key.
func (s *Shard) GetString(key string) (string, error) {
	e, ok := s.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	if e.Typ != TypeString {
		return "", ErrWrongType
	}
	s.evictOnAccess(key)
	if e.Str == "" && s.big != nil {
		if b, err := s.big.Get(key); err == nil {
			return string(b), nil
		}
	}
	return e.Str, nil
}

// GetRange returns the substring of key's value in [start, end] inclusive,
// with Redis's negative-index-from-end semantics.
func (s *Shard) GetRange(key string, start, end int) (string, error) {
	v, err := s.GetString(key)
	if err != nil {
		return "", err
	}
	n := len(v)
	if n == 0 {
		return "", nil
	}
	if start < 0 {
		start = n + start
	}
	if end < 0 {
		end = n + end
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return "", nil
	}
	return v[start : end+1], nil
}

// Strlen returns the length of key's string value.
func (s *Shard) Strlen(key string) (int, error) {
	v, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	return len(v), nil
}

// AppendXX appends value to an existing string key, xx semantics: a miss is
// not itself an error the cache layer treats as a write, it simply reports
// ErrNotFound so the caller leaves the key absent from cache.
func (s *Shard) AppendXX(key, value string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeString {
		return 0, ErrWrongType
	}
	cur, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	next := cur + value
	s.SetString(key, next)
	return len(next), nil
}

// IncrbyfloatXX applies a float delta to an existing numeric string, xx semantics.
func (s *Shard) IncrbyfloatXX(key string, delta float64) (float64, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeString {
		return 0, ErrWrongType
	}
	cur, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(cur, 64)
	if err != nil {
		n = 0
	}
	n += delta
	s.SetString(key, strconv.FormatFloat(n, 'f', -1, 64))
	return n, nil
}

// MSet writes several string keys write-through, ignoring per-key errors.
func (s *Shard) MSet(kv map[string]string) {
	for k, v := range kv {
		s.SetString(k, v)
	}
}

// MGet returns the string values for keys present in this shard, keyed by
// the input key; absent keys are omitted so the caller can fall through to
// the backing store per-key.
func (s *Shard) MGet(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, err := s.GetString(k); err == nil {
			out[k] = v
		}
	}
	return out
}
