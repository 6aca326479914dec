package listing

import "context"

// MemberStatus is the author's standing in the destination channel as
// reported by the membership collaborator. Values mirror the chat
// member roles of the transport.
type MemberStatus string

const (
	MemberCreator       MemberStatus = "creator"
	MemberAdministrator MemberStatus = "administrator"
	MemberMember        MemberStatus = "member"
	MemberRestricted    MemberStatus = "restricted"
	MemberLeft          MemberStatus = "left"
	MemberKicked        MemberStatus = "kicked"
)

// CanPublish reports whether the status permits publishing: anything
// except restricted or departed members.
func (s MemberStatus) CanPublish() bool {
	switch s {
	case MemberRestricted, MemberLeft, MemberKicked:
		return false
	}
	return true
}

// Membership looks up the author's standing in the destination channel.
type Membership interface {
	Status(ctx context.Context, userID int64) (MemberStatus, error)
}

// Publisher posts composed listings to the channel and removes them on
// retraction. Every produced message identifier must be returned so the
// retraction control can bind the whole group.
type Publisher interface {
	PublishText(ctx context.Context, text string) ([]MessageRef, error)
	PublishAlbum(ctx context.Context, images []string, caption string) ([]MessageRef, error)
	Delete(ctx context.Context, refs []MessageRef) error
}
