package operation

// Type represents the type of write operation.
type Type int

const (
	// TypePut represents a write of a value.
	TypePut Type = iota
	// TypeDelete represents a removal of a key.
	TypeDelete
)

func (t Type) String() string {
	switch t {
	case TypePut:
		return "Put"
	case TypeDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}
