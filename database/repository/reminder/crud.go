package reminderRepo

import (
	"context"
	"errors"
	"time"

	"campusnews/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new reminder.
func (r *mongoReminderRepo) Create(ctx context.Context, reminder *models.Reminder) error {
	reminder.CreatedAt = time.Now()
	reminder.ModifiedAt = reminder.CreatedAt

	_, err := r.coll.InsertOne(ctx, reminder)
	return err
}

// GetByID returns a reminder by its ID.
func (r *mongoReminderRepo) GetByID(ctx context.Context, id int64) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// GetAll returns every persisted reminder. Used at startup to restore the
// scheduler's active set.
func (r *mongoReminderRepo) GetAll(ctx context.Context) ([]models.Reminder, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// Update replaces the stored reminder document.
func (r *mongoReminderRepo) Update(ctx context.Context, reminder *models.Reminder) error {
	reminder.ModifiedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": reminder.ID}, reminder)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("reminder not found")
	}
	return nil
}

// SetIgnoreFlag persists the ignoreNextFire flag without touching the rest of
// the document.
func (r *mongoReminderRepo) SetIgnoreFlag(ctx context.Context, id int64, ignore bool) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"ignoreNextFire": ignore}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("reminder not found")
	}
	return nil
}

// DeleteByID removes a reminder by ID.
func (r *mongoReminderRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("reminder not found")
	}
	return nil
}
