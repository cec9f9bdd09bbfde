package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/task-manager/internal/core/domain"
)

const collectionTasks = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB.
// Field names follow the public task JSON so documents read the same in
// the shell as over HTTP.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type mongoTask struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	EndTime      time.Time          `bson:"endTime"`
	ReminderTime time.Time          `bson:"reminderTime"`
	CreatedBy    string             `bson:"created_by"`
	IsCompleted  bool               `bson:"isCompleted"`
	DateCreated  time.Time          `bson:"date_created"`
	RemindedAt   *time.Time         `bson:"reminded_at,omitempty"`
}

func (t mongoTask) toDomain() *domain.Task {
	task := &domain.Task{
		ID:           t.ID.Hex(),
		Title:        t.Title,
		Description:  t.Description,
		EndTime:      t.EndTime.UTC(),
		ReminderTime: t.ReminderTime.UTC(),
		CreatedBy:    t.CreatedBy,
		IsCompleted:  t.IsCompleted,
		DateCreated:  t.DateCreated.UTC(),
	}
	if t.RemindedAt != nil {
		at := t.RemindedAt.UTC()
		task.RemindedAt = &at
	}
	return task
}

// Create inserts a new task document and sets t.ID from the generated ObjectID.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTask{
		ID:           primitive.NewObjectID(),
		Title:        t.Title,
		Description:  t.Description,
		EndTime:      t.EndTime,
		ReminderTime: t.ReminderTime,
		CreatedBy:    t.CreatedBy,
		IsCompleted:  t.IsCompleted,
		DateCreated:  t.DateCreated,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID = doc.ID.Hex()
	return nil
}

// FindByOwner returns every task created by ownerID in natural order.
func (r *TaskRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"created_by": ownerID})
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return decodeTasks(ctx, cursor)
}

// FindByID retrieves a task by id. When ownerID is non-empty, an additional
// filter by created_by is applied. Malformed ids are reported as not found.
func (r *TaskRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	filter, ok := taskFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTask
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies patch with $set and returns the document after the update.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	filter, ok := taskFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTask
	if err := r.col.FindOneAndUpdate(ctx, filter, patchUpdate(patch), opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete reports whether exactly one document was removed.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	filter, ok := taskFilter(id, ownerID)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount == 1, nil
}

// FindDueReminders returns incomplete tasks with an unsent reminder at or
// before now, oldest reminder first.
func (r *TaskRepository) FindDueReminders(ctx context.Context, now time.Time, limit int) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"isCompleted":  false,
		"reminded_at":  nil,
		"reminderTime": bson.M{"$lte": now},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "reminderTime", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find due reminders: %w", err)
	}
	return decodeTasks(ctx, cursor)
}

// MarkReminded records that the reminder for the task was delivered.
func (r *TaskRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"reminded_at": at.UTC()}})
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "isCompleted", Value: 1}, {Key: "reminderTime", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// taskFilter builds the _id (+ created_by) filter. ok is false when id is
// not a valid ObjectID hex string.
func taskFilter(id, ownerID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		filter["created_by"] = ownerID
	}
	return filter, true
}

// patchUpdate translates a patch into a $set document. A new reminder time
// re-arms the reminder by clearing reminded_at.
func patchUpdate(p domain.TaskPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.EndTime != nil {
		set["endTime"] = p.EndTime.UTC()
	}
	if p.ReminderTime != nil {
		set["reminderTime"] = p.ReminderTime.UTC()
	}
	if p.IsCompleted != nil {
		set["isCompleted"] = *p.IsCompleted
	}

	update := bson.M{"$set": set}
	if p.ReminderTime != nil {
		update["$unset"] = bson.M{"reminded_at": ""}
	}
	return update
}

func decodeTasks(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Task, error) {
	defer cursor.Close(ctx)

	tasks := make([]*domain.Task, 0)
	for cursor.Next(ctx) {
		var doc mongoTask
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}
