package store

// SAdd adds members to a set key, creating it if absent. Returns the number
// of members actually added (as opposed to already present).
func (s *Shard) SAdd(key string, members []string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		e = &Entry{Key: key, Typ: TypeSet, Set: make(map[string]struct{}, len(members))}
	} else if e.Typ != TypeSet {
		return 0, ErrWrongType
	}
	added := 0
	for _, m := range members {
		if _, exists := e.Set[m]; !exists {
			e.Set[m] = struct{}{}
			added++
		}
	}
	s.putEntry(e, setCost(e.Set))
	return added, nil
}

// SAddXX adds members only if key already exists as a set.
func (s *Shard) SAddXX(key string, members []string) (int, error) {
	if _, ok := s.lookup(key); !ok {
		return 0, ErrNotFound
	}
	return s.SAdd(key, members)
}

// SMembers returns every member of a set key.
func (s *Shard) SMembers(key string) ([]string, error) {
	e, ok := s.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	if e.Typ != TypeSet {
		return nil, ErrWrongType
	}
	s.evictOnAccess(key)
	out := make([]string, 0, len(e.Set))
	for m := range e.Set {
		out = append(out, m)
	}
	return out, nil
}

// SIsMember reports whether member is in set key.
func (s *Shard) SIsMember(key, member string) (bool, error) {
	e, ok := s.lookup(key)
	if !ok {
		return false, ErrNotFound
	}
	if e.Typ != TypeSet {
		return false, ErrWrongType
	}
	_, ok = e.Set[member]
	return ok, nil
}

// SCard returns the number of members in a set key.
func (s *Shard) SCard(key string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeSet {
		return 0, ErrWrongType
	}
	return len(e.Set), nil
}

// SRem removes members from a set key, deleting the key if it becomes empty.
func (s *Shard) SRem(key string, members []string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeSet {
		return 0, ErrWrongType
	}
	removed := 0
	for _, m := range members {
		if _, exists := e.Set[m]; exists {
			delete(e.Set, m)
			removed++
		}
	}
	if len(e.Set) == 0 {
		s.deleteTyped(key)
	} else {
		s.putEntry(e, setCost(e.Set))
	}
	return removed, nil
}

func setCost(set map[string]struct{}) int64 {
	var n int64
	for m := range set {
		n += int64(len(m))
	}
	return n
}
