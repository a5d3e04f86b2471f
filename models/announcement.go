package models

import "time"

// Announcement is a message published in a channel, either written by a
// moderator or produced automatically by a reminder.
type Announcement struct {
	ID          string    `bson:"id" json:"id"`
	ChannelID   int64     `bson:"channelId" json:"channelId"`
	ModeratorID int64     `bson:"moderatorId" json:"moderatorId"`
	Title       string    `bson:"title" json:"title"`
	Text        string    `bson:"text" json:"text"`
	Priority    int       `bson:"priority" json:"priority"`
	ReminderID  int64     `bson:"reminderId,omitempty" json:"reminderId,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
