// Package policy decides whether a user may modify a record.
package policy

import "errors"

// ErrForbidden is returned when the requesting user does not own the record.
var ErrForbidden = errors.New("this action is unauthorized")

// Owned is implemented by every user-scoped model.
type Owned interface {
	OwnerID() int64
}

// CanModify reports whether userID owns entity.
func CanModify(userID int64, entity Owned) bool {
	return entity != nil && userID > 0 && entity.OwnerID() == userID
}

// Authorize returns ErrForbidden unless userID owns entity.
func Authorize(userID int64, entity Owned) error {
	if !CanModify(userID, entity) {
		return ErrForbidden
	}
	return nil
}
