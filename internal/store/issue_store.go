package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/psds-microservice/issue-service/internal/errs"
	"github.com/psds-microservice/issue-service/internal/model"
)

// IssueStore — адаптер коллекции issue. Пара "обновить поля + дописать
// action" выполняется одним UpdateOne, атомарность на уровне документа
// гарантирует mongo.
type IssueStore struct {
	coll *mongo.Collection
}

func NewIssueStore(coll *mongo.Collection) *IssueStore {
	return &IssueStore{coll: coll}
}

// Insert сохраняет новый issue и возвращает id, назначенный store-ом.
func (s *IssueStore) Insert(ctx context.Context, issue *model.Issue) (string, error) {
	res, err := s.coll.InsertOne(ctx, issue)
	if err != nil {
		return "", fmt.Errorf("store: insert issue: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("store: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID ищет issue по id с фильтром владельца (source_id).
func (s *IssueStore) FindByID(ctx context.Context, issueID, sourceID string) (*model.Issue, error) {
	oid, err := primitive.ObjectIDFromHex(issueID)
	if err != nil {
		return nil, errs.ErrIssueNotFound
	}
	var issue model.Issue
	err = s.coll.FindOne(ctx, bson.M{"_id": oid, "source_id": sourceID}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrIssueNotFound
		}
		return nil, fmt.Errorf("store: find issue: %w", err)
	}
	return &issue, nil
}

// FindAllByOwner возвращает все issue владельца в порядке вставки.
func (s *IssueStore) FindAllByOwner(ctx context.Context, sourceID string) ([]model.Issue, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"source_id": sourceID})
	if err != nil {
		return nil, fmt.Errorf("store: list issues: %w", err)
	}
	var issues []model.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("store: decode issues: %w", err)
	}
	return issues, nil
}

// FindAll возвращает все issue коллекции (для warm-cache).
func (s *IssueStore) FindAll(ctx context.Context) ([]model.Issue, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("store: list all issues: %w", err)
	}
	var issues []model.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("store: decode issues: %w", err)
	}
	return issues, nil
}

// UpdateFieldsAndAppendAction атомарно перезаписывает поля fields и
// дописывает action в конец actions. Пустой fields допустим — тогда
// выполняется только append.
func (s *IssueStore) UpdateFieldsAndAppendAction(ctx context.Context, issueID string, fields bson.M, action model.Action) error {
	oid, err := primitive.ObjectIDFromHex(issueID)
	if err != nil {
		return errs.ErrIssueNotFound
	}
	update := bson.M{"$push": bson.M{"actions": action}}
	if len(fields) > 0 {
		update["$set"] = fields
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("store: update issue: %w", err)
	}
	if res.MatchedCount == 0 {
		return errs.ErrIssueNotFound
	}
	return nil
}
