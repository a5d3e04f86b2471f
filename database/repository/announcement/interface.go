package announcementRepo

import (
	"context"

	"campusnews/database"
	"campusnews/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement models.Announcement) (string, error)
	GetByChannel(ctx context.Context, channelID int64) ([]models.Announcement, error)
}

type mongoAnnouncementRepo struct {
	coll *mongo.Collection
}

// NewMongoAnnouncementRepo returns a new AnnouncementRepository instance using MongoDB.
func NewMongoAnnouncementRepo() AnnouncementRepository {
	db := database.MongoClient.Database("campusnews")
	return &mongoAnnouncementRepo{
		coll: db.Collection("announcements"),
	}
}
