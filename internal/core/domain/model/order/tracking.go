package order

import "time"

// TrackingEntry is one record of the append-only tracking journal. Location and
// Note are empty when the caller did not supply them.
type TrackingEntry struct {
	Status    Status
	Timestamp time.Time
	Location  string
	Note      string
}

// TrackingInfo is the journal view handed to readers: the entries in order plus
// the most recently reported location.
type TrackingInfo struct {
	Entries         []TrackingEntry
	CurrentLocation string
}

func (t TrackingInfo) Last() (TrackingEntry, bool) {
	if len(t.Entries) == 0 {
		return TrackingEntry{}, false
	}
	return t.Entries[len(t.Entries)-1], true
}
