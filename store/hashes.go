package store

// HSet writes a hash key write-through, creating it if absent and merging
// fields into the existing hash otherwise.
func (s *Shard) HSet(key string, fields map[string]string) error {
	e, ok := s.lookup(key)
	if !ok {
		e = &Entry{Key: key, Typ: TypeHash, Hash: make(map[string]string, len(fields))}
	} else if e.Typ != TypeHash {
		return ErrWrongType
	}
	for k, v := range fields {
		e.Hash[k] = v
	}
	s.putEntry(e, hashCost(e.Hash))
	return nil
}

// HSetXX writes fields into key only if key already exists as a hash.
func (s *Shard) HSetXX(key string, fields map[string]string) error {
	if _, ok := s.lookup(key); !ok {
		return ErrNotFound
	}
	return s.HSet(key, fields)
}

// HGet returns one field of a hash key.
func (s *Shard) HGet(key, field string) (string, error) {
	e, ok := s.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	if e.Typ != TypeHash {
		return "", ErrWrongType
	}
	s.evictOnAccess(key)
	v, ok := e.Hash[field]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// HGetAll returns every field/value pair of a hash key.
func (s *Shard) HGetAll(key string) (map[string]string, error) {
	e, ok := s.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	if e.Typ != TypeHash {
		return nil, ErrWrongType
	}
	s.evictOnAccess(key)
	out := make(map[string]string, len(e.Hash))
	for k, v := range e.Hash {
		out[k] = v
	}
	return out, nil
}

// HDel removes fields from a hash key, deleting the key entirely if it
// becomes empty. Returns the number of fields actually removed.
func (s *Shard) HDel(key string, fields []string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeHash {
		return 0, ErrWrongType
	}
	removed := 0
	for _, f := range fields {
		if _, ok := e.Hash[f]; ok {
			delete(e.Hash, f)
			removed++
		}
	}
	if len(e.Hash) == 0 {
		s.deleteTyped(key)
	} else {
		s.putEntry(e, hashCost(e.Hash))
	}
	return removed, nil
}

// HLen returns the number of fields in a hash key.
func (s *Shard) HLen(key string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeHash {
		return 0, ErrWrongType
	}
	return len(e.Hash), nil
}

// HExists reports whether field exists in hash key.
func (s *Shard) HExists(key, field string) (bool, error) {
	e, ok := s.lookup(key)
	if !ok {
		return false, ErrNotFound
	}
	if e.Typ != TypeHash {
		return false, ErrWrongType
	}
	_, ok = e.Hash[field]
	return ok, nil
}

func hashCost(h map[string]string) int64 {
	var n int64
	for k, v := range h {
		n += int64(len(k) + len(v))
	}
	return n
}
