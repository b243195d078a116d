package domain

import "strconv"

// Document represents a stored text document.
// The ID is assigned by the backend on creation; the client never invents one.
type Document struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// Text is the document body.
	Text string `json:"text"`
}

// IDString returns the decimal representation of the document id.
func (d Document) IDString() string {
	return strconv.FormatInt(d.ID, 10)
}

// UpsertItem is a single document payload. It carries no id.
type UpsertItem struct {
	Text string `json:"text"`
}

// UpsertRequest is the body sent to the upsert operation.
type UpsertRequest struct {
	// Items are the documents to insert.
	Items []UpsertItem `json:"items"`

	// Overwrite declares whether existing matches may be replaced.
	// The backend decides the actual merge policy.
	Overwrite bool `json:"overwrite"`
}

// UpsertResult reports the outcome of an upsert.
type UpsertResult struct {
	// Inserted is the number of inserted documents, nil when not reported.
	Inserted *int `json:"inserted,omitempty"`

	// IDs are the server-assigned ids, when reported.
	IDs []int64 `json:"ids,omitempty"`
}

// DeleteAllResult reports the outcome of a delete-all.
type DeleteAllResult struct {
	// Deleted is the number of removed documents, nil when not reported.
	Deleted *int `json:"deleted,omitempty"`
}

// Stats is aggregate metadata about the stored collection.
type Stats struct {
	// Collection is the collection name.
	Collection string `json:"collection"`

	// NumEntities is the number of stored entities.
	NumEntities int64 `json:"num_entities"`
}

// Hit is a ranked supporting context returned by search or ask.
type Hit struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// FormatCount renders an optional count, using "?" when it was not reported.
func FormatCount(n *int) string {
	if n == nil {
		return "?"
	}
	return strconv.Itoa(*n)
}
