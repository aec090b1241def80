package events

import (
	"time"
)

// Event is one conversation event. Concrete values are the *Event structs in
// this package; switch on them or on Tag.
type Event interface {
	// Type returns the discriminator in its wire spelling.
	Type() string
	// Tag returns the normalized discriminator. Custom events report
	// TagCustom and unrecognized events report TagUnknown.
	Tag() Tag
	// Header returns the attributes shared by every event.
	Header() Common

	payload() any
}

// Common holds the attributes present on every event. ID and Timestamp are
// assigned by the server and are nil on events built for sending.
type Common struct {
	ID        *int64     `json:"id,omitempty"`
	From      string     `json:"from,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Embedded  *Embedded  `json:"_embedded,omitempty"`
}

// Header returns c. Variants embed Common and inherit it.
func (c Common) Header() Common {
	return c
}

// Embedded carries the cross references the server attaches to an event.
type Embedded struct {
	FromUser   *UserRef   `json:"from_user,omitempty"`
	FromMember *MemberRef `json:"from_member,omitempty"`
}

// UserRef identifies the user behind an event or member.
type UserRef struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// MemberRef identifies the member that produced an event.
type MemberRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}
