package metrics

import (
	"encoding/json"
	"fmt"

	"github.com/hayeah/apktree/archive"
)

// Metric types.
const (
	TypeFile    = "file"
	TypeArchive = "archive"
)

// Key identifies a specific metric by type and key
type Key struct {
	Type string // "file" | "archive"
	Key  string
}

// String returns a string representation of the Key
func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.Type, k.Key)
}

// NewKey creates a new Key with the given type and key
func NewKey(typ, key string) Key {
	return Key{Type: typ, Key: key}
}

// Item stores the sizes recorded under one key
type Item struct {
	Bytes      uint64 `json:"bytes"`
	Compressed uint64 `json:"compressed"`
	Count      int    `json:"count"`
}

// Add adds one member's sizes to this item
func (it *Item) Add(bytes, compressed uint64) {
	it.Bytes += bytes
	it.Compressed += compressed
	it.Count++
}

// Ratio returns compressed/uncompressed, or 1 for empty items.
func (it Item) Ratio() float64 {
	if it.Bytes == 0 {
		return 1
	}
	return float64(it.Compressed) / float64(it.Bytes)
}

// Sizes collects byte totals for archive members. It is filled by a single
// analysis run and is not safe for concurrent use.
type Sizes struct {
	Items map[Key]Item
	order []Key
}

// NewSizes returns an empty collector.
func NewSizes() *Sizes {
	return &Sizes{Items: make(map[Key]Item)}
}

// Add records bytes under typ:key. Repeated keys accumulate.
func (s *Sizes) Add(typ, key string, bytes, compressed uint64) {
	k := NewKey(typ, key)
	it, ok := s.Items[k]
	if !ok {
		s.order = append(s.order, k)
	}
	it.Add(bytes, compressed)
	s.Items[k] = it
}

// AddArchive records every file entry of ar, plus the container overhead
// (local headers, central directory, signing block) as archive:overhead.
func (s *Sizes) AddArchive(ar *archive.Archive) {
	compressed := s.AddEntries(ar.Entries)
	if size := uint64(ar.Size); size > compressed {
		overhead := size - compressed
		s.Add(TypeArchive, "overhead", overhead, overhead)
	}
}

// AddEntries records the file entries and returns the sum of their
// compressed sizes. Directory records carry no data and are skipped.
func (s *Sizes) AddEntries(entries []archive.Entry) uint64 {
	var compressed uint64
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		s.Add(TypeFile, e.Path, e.Size, e.CompressedSize)
		compressed += e.CompressedSize
	}
	return compressed
}

// Keys returns the recorded keys in first-seen order.
func (s *Sizes) Keys() []Key {
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}

// SumBy returns the sum of all items of the given type
func (s *Sizes) SumBy(typ string) Item {
	var sum Item
	for _, k := range s.order {
		if k.Type != typ {
			continue
		}
		it := s.Items[k]
		sum.Bytes += it.Bytes
		sum.Compressed += it.Compressed
		sum.Count += it.Count
	}
	return sum
}

// MarshalJSON marshals the sizes with string keys
func (s *Sizes) MarshalJSON() ([]byte, error) {
	result := make(map[string]Item, len(s.Items))
	for k, v := range s.Items {
		result[k.String()] = v
	}
	return json.Marshal(result)
}
