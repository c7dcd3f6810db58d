// Package policy is the capability-based authorization layer: a single
// subject x action x resource decision point instead of role checks spread
// through handlers. AuthN itself happens upstream at the gateway; this
// package only decides what a resolved user may do.
package policy

import (
	"errors"

	"github.com/hxann/eduscore/internal/model"
)

// ErrForbidden is returned when the policy denies an action.
var ErrForbidden = errors.New("permission denied")

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionHandle Action = "handle" // approve/reject a report
)

type Authorizer interface {
	Allow(subject *model.User, action Action, resource any) bool
}

type authorizer struct{}

func NewAuthorizer() Authorizer {
	return &authorizer{}
}

func (a *authorizer) Allow(subject *model.User, action Action, resource any) bool {
	if subject == nil {
		return false
	}
	if subject.IsAdmin() {
		return true
	}

	switch res := resource.(type) {
	case *model.Activity:
		// Staff may delete or update only activities they created.
		if action == ActionDelete || action == ActionUpdate {
			return subject.IsStaff() && res.CreatedByID == subject.ID
		}
		return true
	case *model.Comment:
		// Comment owners may remove their own comments.
		if action == ActionDelete {
			return res.UserID == subject.ID
		}
		return true
	case *model.Report:
		if action == ActionHandle {
			return subject.IsStaff()
		}
		if action == ActionRead {
			return subject.IsStaff() || res.StudentID == subject.ID
		}
		return res.StudentID == subject.ID
	case *model.Message:
		return res.SenderID == subject.ID || res.ReceiverID == subject.ID
	}
	return false
}
