package store

// List operations mirror the whole-list-replacement contract: the cache
// never partially tracks a list the way it does zset windows, so
// pushes/pops here operate on a fully cached list only and the cache
// layer is responsible for invalidating on any doubt about coverage.

// LPush prepends values to key, creating it if absent.
func (s *Shard) LPush(key string, values []string) error {
	e, ok := s.lookup(key)
	if !ok {
		e = &Entry{Key: key, Typ: TypeList}
	} else if e.Typ != TypeList {
		return ErrWrongType
	}
	for _, v := range values {
		e.List = append([]string{v}, e.List...)
	}
	s.putEntry(e, listCost(e.List))
	return nil
}

// RPush appends values to key, creating it if absent.
func (s *Shard) RPush(key string, values []string) error {
	e, ok := s.lookup(key)
	if !ok {
		e = &Entry{Key: key, Typ: TypeList}
	} else if e.Typ != TypeList {
		return ErrWrongType
	}
	e.List = append(e.List, values...)
	s.putEntry(e, listCost(e.List))
	return nil
}

// LPushXX prepends only if key already exists as a list.
func (s *Shard) LPushXX(key string, values []string) error {
	if _, ok := s.lookup(key); !ok {
		return ErrNotFound
	}
	return s.LPush(key, values)
}

// RPushXX appends only if key already exists as a list.
func (s *Shard) RPushXX(key string, values []string) error {
	if _, ok := s.lookup(key); !ok {
		return ErrNotFound
	}
	return s.RPush(key, values)
}

// LRange returns elements at 0-based indices [start, stop], negative
// indices counted from the tail, per Redis LRANGE semantics.
func (s *Shard) LRange(key string, start, stop int) ([]string, error) {
	e, ok := s.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	if e.Typ != TypeList {
		return nil, ErrWrongType
	}
	s.evictOnAccess(key)
	n := len(e.List)
	start, stop = normalizeListRange(start, stop, n)
	if start > stop {
		return nil, nil
	}
	out := make([]string, stop-start+1)
	copy(out, e.List[start:stop+1])
	return out, nil
}

// LLen returns the length of a list key.
func (s *Shard) LLen(key string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeList {
		return 0, ErrWrongType
	}
	return len(e.List), nil
}

// LTrim reduces key to the elements within [start, stop], deleting the key
// if the resulting range is empty.
func (s *Shard) LTrim(key string, start, stop int) error {
	e, ok := s.lookup(key)
	if !ok {
		return ErrNotFound
	}
	if e.Typ != TypeList {
		return ErrWrongType
	}
	n := len(e.List)
	nStart, nStop := normalizeListRange(start, stop, n)
	if nStart > nStop {
		s.deleteTyped(key)
		return nil
	}
	e.List = append([]string{}, e.List[nStart:nStop+1]...)
	s.putEntry(e, listCost(e.List))
	return nil
}

func normalizeListRange(start, stop, n int) (int, int) {
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	return start, stop
}

func listCost(l []string) int64 {
	var n int64
	for _, v := range l {
		n += int64(len(v))
	}
	return n
}
