package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// PushType tags the semantic meaning of a notification.
type PushType string

const (
	PushAnnouncementNew PushType = "ANNOUNCEMENT_NEW"
	PushConversationNew PushType = "CONVERSATION_NEW"

	PushBallotChanged       PushType = "BALLOT_CHANGED"
	PushBallotOptionNew     PushType = "BALLOT_OPTION_NEW"
	PushBallotOptionVote    PushType = "BALLOT_OPTION_VOTE"
	PushConversationChanged PushType = "CONVERSATION_CHANGED"

	PushBallotChangedAll       PushType = "BALLOT_CHANGED_ALL"
	PushBallotOptionAll        PushType = "BALLOT_OPTION_ALL"
	PushBallotOptionVoteAll    PushType = "BALLOT_OPTION_VOTE_ALL"
	PushConversationChangedAll PushType = "CONVERSATION_CHANGED_ALL"
)

// bulkVariants maps a coalescing-eligible push type to the type dispatched
// when more than one equivalent request arrived inside the window. Clients
// show a generic "there are updates" notification for the bulk variants.
var bulkVariants = map[PushType]PushType{
	PushBallotChanged:       PushBallotChangedAll,
	PushBallotOptionNew:     PushBallotOptionAll,
	PushBallotOptionVote:    PushBallotOptionVoteAll,
	PushConversationChanged: PushConversationChangedAll,
}

// Coalescing reports whether requests of this type are debounced before
// dispatch.
func (t PushType) Coalescing() bool {
	_, ok := bulkVariants[t]
	return ok
}

// Bulk returns the bulk counterpart of a coalescing-eligible type, or the
// type itself when no counterpart exists.
func (t PushType) Bulk() PushType {
	if b, ok := bulkVariants[t]; ok {
		return b
	}
	return t
}

// Platform tags the device family a push token belongs to.
type Platform string

const (
	PlatformAndroid Platform = "ANDROID"
	PlatformWindows Platform = "WINDOWS"
)

// PushRecipient is one addressee of a push message.
type PushRecipient struct {
	Platform Platform `bson:"platform" json:"platform"`
	Token    string   `bson:"token" json:"token"`
}

// PushMessage is an internal notification request, not yet partitioned by
// platform. ID1 is required; ID2 and ID3 depend on the push type (group id,
// ballot id, option id and the like).
type PushMessage struct {
	Type       PushType
	Recipients []PushRecipient
	ID1        int64
	ID2        *int64
	ID3        *int64
}

// PushKey is the dedup identity of a pending push request. Two requests are
// the same iff they share type, recipient set and ID1 — and ID2, but only for
// the two ballot-option types. ID3 never participates.
type PushKey struct {
	Type       PushType
	ID1        int64
	ID2        int64
	Recipients string
}

// Key derives the coalescing key for this message.
func (m *PushMessage) Key() PushKey {
	k := PushKey{
		Type:       m.Type,
		ID1:        m.ID1,
		Recipients: fingerprintRecipients(m.Recipients),
	}
	if m.Type == PushBallotOptionNew || m.Type == PushBallotOptionVote {
		if m.ID2 != nil {
			k.ID2 = *m.ID2
		}
	}
	return k
}

// Payload serializes the platform-agnostic notification body sent to every
// gateway: {"pushType": ..., "id1": ..., "id2": ..., "id3": ...}.
func (m *PushMessage) Payload() ([]byte, error) {
	return json.Marshal(struct {
		PushType PushType `json:"pushType"`
		ID1      int64    `json:"id1"`
		ID2      *int64   `json:"id2"`
		ID3      *int64   `json:"id3"`
	}{m.Type, m.ID1, m.ID2, m.ID3})
}

// fingerprintRecipients canonicalizes a recipient set so that ordering does
// not affect dedup identity.
func fingerprintRecipients(recipients []PushRecipient) string {
	entries := make([]string, 0, len(recipients))
	for _, r := range recipients {
		entries = append(entries, string(r.Platform)+"|"+r.Token)
	}
	sort.Strings(entries)
	return strings.Join(entries, "\n")
}
