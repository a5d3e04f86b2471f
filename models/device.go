package models

import "time"

// Device is a push endpoint subscribed to a channel. The token is the
// platform-specific delivery address: an FCM registration id for Android, a
// WNS channel URI for Windows.
type Device struct {
	ChannelID    int64     `bson:"channelId" json:"channelId"`
	Platform     Platform  `bson:"platform" json:"platform"`
	Token        string    `bson:"token" json:"token"`
	RegisteredAt time.Time `bson:"registeredAt" json:"registeredAt"`
}
