// Package policy makes per-resource, per-action authorization decisions.
// Decide is a pure function of the actor and the requested operation, so
// the full rule table is unit-testable without any transport.
package policy

import "jobprep/internal/models"

type Resource string

const (
	ResourceProblem Resource = "problem"
	ResourceTag     Resource = "tag"
	ResourceCompany Resource = "company"
	ResourceStatus  Resource = "status"
	ResourceUser    Resource = "user"
)

type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

type Effect int

const (
	// Allow permits the action, possibly scoped to the actor's own rows.
	Allow Effect = iota
	// DenyUnauthenticated means credentials are required and absent (401).
	DenyUnauthenticated
	// DenyForbidden means the actor is known but not permitted (403).
	DenyForbidden
)

// Decision is the outcome of a policy check. OwnRowsOnly instructs the
// caller to restrict queries to rows owned by the actor, which is what
// turns another user's row into a 404 rather than a 403.
type Decision struct {
	Effect      Effect
	OwnRowsOnly bool
}

func (d Decision) Allowed() bool { return d.Effect == Allow }

// Decide evaluates (actor, resource, action, ownerID). A nil actor is
// anonymous. ownerID is the owning user of the target object where one
// exists (Status rows, User records); it is ignored for list and create.
func Decide(actor *models.User, resource Resource, action Action, ownerID uint) Decision {
	switch resource {
	case ResourceProblem, ResourceTag, ResourceCompany:
		return decideCatalog(actor, action)
	case ResourceStatus:
		return decideStatus(actor)
	case ResourceUser:
		return decideUser(actor, action, ownerID)
	}
	return Decision{Effect: DenyForbidden}
}

// Catalog entries are public to read, staff-only to write. A missing
// credential on a write is reported as forbidden, not unauthenticated,
// matching the public nature of the resource.
func decideCatalog(actor *models.User, action Action) Decision {
	switch action {
	case ActionList, ActionRetrieve:
		return Decision{Effect: Allow}
	}
	if actor != nil && actor.IsStaff {
		return Decision{Effect: Allow}
	}
	return Decision{Effect: DenyForbidden}
}

// Status rows always require an authenticated actor; non-staff actors are
// scoped to their own rows for every action, including list.
func decideStatus(actor *models.User) Decision {
	if actor == nil {
		return Decision{Effect: DenyUnauthenticated}
	}
	return Decision{Effect: Allow, OwnRowsOnly: !actor.IsStaff}
}

func decideUser(actor *models.User, action Action, ownerID uint) Decision {
	if action == ActionCreate {
		return Decision{Effect: Allow}
	}
	if actor == nil {
		return Decision{Effect: DenyUnauthenticated}
	}
	if actor.IsStaff {
		return Decision{Effect: Allow}
	}
	if action == ActionList {
		return Decision{Effect: DenyForbidden}
	}
	if actor.ID == ownerID {
		return Decision{Effect: Allow}
	}
	return Decision{Effect: DenyForbidden}
}
