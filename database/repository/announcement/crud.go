package announcementRepo

import (
	"context"
	"time"

	"campusnews/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new announcement and returns its ID.
func (r *mongoAnnouncementRepo) Create(ctx context.Context, announcement models.Announcement) (string, error) {
	if announcement.ID == "" {
		announcement.ID = uuid.New().String()
	}
	announcement.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, announcement)
	if err != nil {
		return "", err
	}
	return announcement.ID, nil
}

// GetByChannel fetches all announcements of a channel, newest first.
func (r *mongoAnnouncementRepo) GetByChannel(ctx context.Context, channelID int64) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.coll.Find(ctx, bson.M{"channelId": channelID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}
