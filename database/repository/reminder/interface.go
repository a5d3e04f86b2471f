package reminderRepo

import (
	"context"

	"campusnews/database"
	"campusnews/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReminderRepository is the persistence collaborator of the reminder
// scheduler. The in-memory active projection is owned by the scheduler; the
// persisted record is owned here.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	GetByID(ctx context.Context, id int64) (*models.Reminder, error)
	GetAll(ctx context.Context) ([]models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	SetIgnoreFlag(ctx context.Context, id int64, ignore bool) error
	DeleteByID(ctx context.Context, id int64) error
}

type mongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo returns a new ReminderRepository instance using MongoDB.
func NewMongoReminderRepo() ReminderRepository {
	db := database.MongoClient.Database("campusnews")
	return &mongoReminderRepo{
		coll: db.Collection("reminders"),
	}
}
