package deviceRepo

import (
	"context"

	"campusnews/database"
	"campusnews/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DeviceRepository stores which push endpoints are subscribed to a channel.
type DeviceRepository interface {
	Subscribe(ctx context.Context, device models.Device) error
	Unsubscribe(ctx context.Context, channelID int64, token string) error
	GetByChannel(ctx context.Context, channelID int64) ([]models.Device, error)
}

type mongoDeviceRepo struct {
	coll *mongo.Collection
}

// NewMongoDeviceRepo returns a new DeviceRepository instance using MongoDB.
func NewMongoDeviceRepo() DeviceRepository {
	db := database.MongoClient.Database("campusnews")
	return &mongoDeviceRepo{
		coll: db.Collection("devices"),
	}
}
