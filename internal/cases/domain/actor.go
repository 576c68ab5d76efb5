package domain

import (
	"github.com/google/uuid"
)

// Actor is the party performing a case operation: either an anonymous reporter proving
// possession of the case public key, or an authenticated organization member.
type Actor struct {
	ReporterPublicKey string
	MemberID          uuid.UUID
	OrganizationID    uuid.UUID
}

// ReporterActor returns an actor identified by a sodium-encoded case public key.
func ReporterActor(publicKey string) Actor {
	return Actor{ReporterPublicKey: publicKey}
}

// MemberActor returns an actor identified by an authenticated session.
func MemberActor(memberID, orgID uuid.UUID) Actor {
	return Actor{MemberID: memberID, OrganizationID: orgID}
}

// IsMember reports whether the actor is an organization member.
func (a Actor) IsMember() bool {
	return a.MemberID != uuid.Nil
}

// SenderType returns the conversation role of the actor.
func (a Actor) SenderType() SenderType {
	if a.IsMember() {
		return SenderAdmin
	}
	return SenderAnonymous
}
