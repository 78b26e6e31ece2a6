package store

import "sort"

// Entry is one visible record.
type Entry struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// List returns every visible record in the order its id first appeared in
// the log.
func (l *Log) List() []Entry {
	ordered := make([]*entry, 0, len(l.records))
	for _, e := range l.records {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].first < ordered[j].first
	})

	out := make([]Entry, len(ordered))
	for i, e := range ordered {
		out[i] = Entry{ID: e.rec.ID, Content: e.rec.Content}
	}
	return out
}

// Get returns the visible record for id.
func (l *Log) Get(id string) (Entry, bool) {
	e, ok := l.records[id]
	if !ok {
		return Entry{}, false
	}
	return Entry{ID: e.rec.ID, Content: e.rec.Content}, true
}
