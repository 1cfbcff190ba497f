package catalog

// Link is a directed relation between two catalog entries. Direction
// matters for incoming-link counting; rendering treats links as
// undirected edges.
type Link struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Snapshot is the wholesale dataset handed to the visualization stack:
// every entry plus every link, as stored. Filtering of isolated entries
// and dangling links happens downstream, never here.
type Snapshot struct {
	Entries []Entry `json:"nodes"`
	Links   []Link  `json:"links"`
}

// Entry returns the entry with the given ID, or nil.
func (s *Snapshot) Entry(id string) *Entry {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i]
		}
	}
	return nil
}
