package model

import "encoding/json"

// EntryTypeEvent is the only entry type found in event store backups.
const EntryTypeEvent = "event"

// Event is a CloudEvents-shaped record as stored in the event log.
type Event struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Time            string          `json:"time"`
	Source          string          `json:"source"`
	Subject         string          `json:"subject"`
	Type            string          `json:"type"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
	PredecessorHash string          `json:"predecessorhash"`
	TraceParent     string          `json:"traceparent,omitempty"`
	TraceState      string          `json:"tracestate,omitempty"`
}

// Payload pairs an event with the digest stored alongside it.
type Payload struct {
	Event Event  `json:"event"`
	Hash  string `json:"hash"`
}

// Entry is a single line of a backup file.
//
// OriginalData holds the verbatim bytes of the event's data value as they
// appeared in storage. It is nil for events that were not read from a
// backup; hashing falls back to re-serializing Data in that case.
type Entry struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`

	OriginalData []byte `json:"-"`
}

// ID returns the id of the wrapped event.
func (e Entry) ID() string {
	return e.Payload.Event.ID
}

// Hash returns the stored digest of the wrapped event.
func (e Entry) Hash() string {
	return e.Payload.Hash
}
