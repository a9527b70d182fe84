// Package types contains the persisted record formats shared by storage and
// export.
package types

// Move is the stored form of a recorded move.
//
// A slice turn has Direction "row" or "column", a Number of 0-2 and the
// Backwards flag. A view rotation has Rotation set and Direction "x", "y" or
// "z".
type Move struct {
	Rotation  bool   `json:"rotation,omitempty"`
	Direction string `json:"direction"`
	Number    int    `json:"number"`
	Backwards bool   `json:"backwards"`
}

// IsRotation reports whether the record is a view rotation.
func (m Move) IsRotation() bool {
	return m.Rotation
}
