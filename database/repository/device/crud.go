package deviceRepo

import (
	"context"
	"time"

	"campusnews/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subscribe upserts a device subscription for a channel. Re-registering an
// existing token refreshes its timestamp.
func (r *mongoDeviceRepo) Subscribe(ctx context.Context, device models.Device) error {
	device.RegisteredAt = time.Now()

	filter := bson.M{"channelId": device.ChannelID, "token": device.Token}
	update := bson.M{"$set": device}
	opts := options.Update().SetUpsert(true)

	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

// Unsubscribe removes a device subscription. Removing an unknown token is a
// no-op.
func (r *mongoDeviceRepo) Unsubscribe(ctx context.Context, channelID int64, token string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"channelId": channelID, "token": token})
	return err
}

// GetByChannel fetches all devices subscribed to a channel.
func (r *mongoDeviceRepo) GetByChannel(ctx context.Context, channelID int64) ([]models.Device, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"channelId": channelID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}
