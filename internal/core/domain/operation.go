package domain

// Operation names a remote call tracked by the busy state.
type Operation string

// Document management operations.
const (
	OpUpsert Operation = "upsert"
	OpList   Operation = "list"
	OpStats  Operation = "stats"
	OpDelete Operation = "delete"
)

// Chat operations.
const (
	OpAsk Operation = "ask"
)

// String returns the operation name.
func (o Operation) String() string {
	return string(o)
}

// DocumentOperations returns the operations of the document workflow.
func DocumentOperations() []Operation {
	return []Operation{OpUpsert, OpList, OpStats, OpDelete}
}
