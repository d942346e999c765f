package domain

// Kind identifies one of the GitHub resource categories kept in sync.
type Kind string

const (
	KindEvent        Kind = "event"
	KindIssue        Kind = "issue"
	KindPullRequest  Kind = "pull_request"
	KindMilestone    Kind = "milestone"
	KindLabel        Kind = "label"
	KindCollaborator Kind = "collaborator"
)

// kindPolicy fixes the identity and lifecycle rules for one resource kind.
// The rules are static per kind, never per element.
type kindPolicy struct {
	// overwrite: a write with an existing id replaces the stored document.
	overwrite bool
	// volatile: wiped and fully reinserted at the start of every cycle,
	// because the listing endpoint only reflects current remote state and
	// there is no other way to observe remote deletions.
	volatile bool
	// hashOnly: the id is always derived from content; a natural id field
	// in the payload is ignored.
	hashOnly bool
}

var kindPolicies = map[Kind]kindPolicy{
	KindEvent:        {overwrite: true},
	KindIssue:        {overwrite: true},
	KindPullRequest:  {volatile: true},
	KindMilestone:    {volatile: true},
	KindLabel:        {volatile: true, hashOnly: true},
	KindCollaborator: {volatile: true},
}

// AllKinds returns every synchronised resource kind in fetch order.
func AllKinds() []Kind {
	return []Kind{
		KindEvent,
		KindIssue,
		KindPullRequest,
		KindMilestone,
		KindCollaborator,
		KindLabel,
	}
}

// VolatileKinds returns the kinds purged at the start of every cycle.
// Events and issues are durable: they are only ever overwritten in place
// and may outlive their remote deletion.
func VolatileKinds() []Kind {
	return []Kind{
		KindMilestone,
		KindPullRequest,
		KindCollaborator,
		KindLabel,
	}
}

// Valid reports whether k is one of the six synchronised kinds.
func (k Kind) Valid() bool {
	_, ok := kindPolicies[k]
	return ok
}

// Overwrite reports whether a write with an existing id replaces the
// stored document. False means create-only: duplicates are dropped.
func (k Kind) Overwrite() bool {
	return kindPolicies[k].overwrite
}

// Volatile reports whether documents of this kind are purged each cycle.
func (k Kind) Volatile() bool {
	return kindPolicies[k].volatile
}
