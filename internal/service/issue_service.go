package service

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/psds-microservice/issue-service/internal/errs"
	"github.com/psds-microservice/issue-service/internal/kafka"
	"github.com/psds-microservice/issue-service/internal/model"
	"github.com/psds-microservice/issue-service/internal/pagination"
)

// IssueServicer — интерфейс движка для handler-ов (Dependency Inversion).
type IssueServicer interface {
	Create(ctx context.Context, req CreateIssueRequest) (networkIssueID, issueID string, err error)
	List(ctx context.Context, ownerID string, offset, limit int) ([]model.Issue, error)
	Get(ctx context.Context, ownerID, issueID string) (*model.Issue, error)
	Update(ctx context.Context, ownerID, issueID string, req UpdateIssueRequest) error
}

// IssueStore — контракт document store (для подмены моком в тестах).
type IssueStore interface {
	Insert(ctx context.Context, issue *model.Issue) (string, error)
	FindByID(ctx context.Context, issueID, sourceID string) (*model.Issue, error)
	FindAllByOwner(ctx context.Context, sourceID string) ([]model.Issue, error)
	UpdateFieldsAndAppendAction(ctx context.Context, issueID string, fields bson.M, action model.Action) error
}

// SnapshotCache — контракт кеша снапшотов issue.
type SnapshotCache interface {
	Get(ctx context.Context, issueID string) (*model.Issue, bool)
	Set(ctx context.Context, issueID string, issue *model.Issue) bool
}

type CreateIssueRequest struct {
	TransactionID string
	Status        model.IssueStatus
	Level         model.IssueLevel
	ComplainantID string
	SourceID      string
	OrderID       string
	ItemID        string
	Description   model.Description
	RefID         string
	RefType       string
	ActorName     string
}

type UpdateIssueRequest struct {
	Status        model.IssueStatus
	Level         model.IssueLevel
	ActionType    string
	ShortDesc     string
	ActorName     string
	ActorImages   []string
	RefID         string
	RefType       string
	ComplainantID string
}

// IssueService — движок жизненного цикла issue. Внутреннего состояния не
// держит, безопасен для конкурентных вызовов: консистентность обеспечивает
// атомарный single-document update store-а. Единственный писатель кеша.
type IssueService struct {
	store IssueStore
	cache SnapshotCache
	// producer best-effort, события не влияют на результат операции.
	producer kafka.IssueEventProducer
	// strictOwnership — не учитывать кеш при проверке владельца: чужой
	// снапшот тогда не даёт быстрый 403, решает только фильтр store
	// (по умолчанию выключено).
	strictOwnership bool
}

func NewIssueService(store IssueStore, cache SnapshotCache, producer kafka.IssueEventProducer, strictOwnership bool) *IssueService {
	return &IssueService{
		store:           store,
		cache:           cache,
		producer:        producer,
		strictOwnership: strictOwnership,
	}
}

// Create сохраняет новый issue с seed-action OPEN и пишет снапшот в кеш
// (write-through). Срок разрешения при создании всегда дефолтный P1D,
// даже если level выше ISSUE — политика исходной системы сохранена.
func (s *IssueService) Create(ctx context.Context, req CreateIssueRequest) (string, string, error) {
	networkIssueID := uuid.NewString()
	now := model.UTCNowISO()

	seed := model.Action{
		ID: uuid.NewString(),
		Descriptor: model.ActionDescriptor{
			Code:      "OPEN",
			ShortDesc: req.Description.ShortDesc,
			Name:      req.Description.Code,
			Images:    req.Description.Images,
		},
		UpdatedAt: now,
		ActionBy:  req.ComplainantID,
		ActorDetails: model.ActorDetails{
			UserID: req.SourceID,
			Name:   req.ActorName,
		},
		RefID:   req.RefID,
		RefType: req.RefType,
	}

	issue := &model.Issue{
		NetworkIssueID:         networkIssueID,
		TransactionID:          req.TransactionID,
		Status:                 req.Status,
		Level:                  req.Level,
		ExpectedResolutionTime: model.ResolutionTime{Duration: model.CreationResolutionDuration},
		ComplainantID:          req.ComplainantID,
		SourceID:               req.SourceID,
		OrderID:                req.OrderID,
		ItemID:                 req.ItemID,
		Description:            req.Description,
		Actions:                []model.Action{seed},
		IsActive:               true,
		CreatedAt:              now,
	}

	issueID, err := s.store.Insert(ctx, issue)
	if err != nil {
		return "", "", err
	}
	if oid, err := primitive.ObjectIDFromHex(issueID); err == nil {
		issue.ID = oid
	}

	s.cache.Set(ctx, issueID, issue)
	s.emit(ctx, "issue.created", issueID, issue)
	return networkIssueID, issueID, nil
}

// List возвращает страницу issue владельца. offset начинается с 1.
func (s *IssueService) List(ctx context.Context, ownerID string, offset, limit int) ([]model.Issue, error) {
	issues, err := s.store.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(issues, offset, limit), nil
}

// Get — read-through: попадание в кеш возвращается как есть, без
// перепроверки владельца по store. При промахе читаем store с фильтром
// владельца; обратно в кеш на пути чтения не пишем.
func (s *IssueService) Get(ctx context.Context, ownerID, issueID string) (*model.Issue, error) {
	if snapshot, ok := s.cache.Get(ctx, issueID); ok {
		return snapshot, nil
	}
	return s.store.FindByID(ctx, issueID, ownerID)
}

// Update — операция state machine. Меняет status и/или level, всегда
// дописывает ровно один action, затем перечитывает документ и целиком
// перезаписывает снапшот в кеше (никаких точечных правок кеша).
func (s *IssueService) Update(ctx context.Context, ownerID, issueID string, req UpdateIssueRequest) error {
	current, err := s.resolveOwned(ctx, ownerID, issueID)
	if err != nil {
		return err
	}

	now := model.UTCNowISO()

	fields := bson.M{}
	if req.Status != "" {
		fields["status"] = req.Status
		fields["actual_resolution_time"] = now
	}
	if req.Level != "" {
		if model.LevelRank(req.Level) < model.LevelRank(current.Level) {
			return errs.ErrLevelDowngrade
		}
		fields["level"] = req.Level
		if duration, ok := model.EscalationResolutionDuration(req.Level); ok {
			fields["expected_resolution_time"] = model.ResolutionTime{Duration: duration}
		}
	}
	// Пустой fields допустим: update без смены полей всё равно дописывает
	// action (из двух вариантов исходного движка принят разрешающий).

	action := model.Action{
		ID: uuid.NewString(),
		Descriptor: model.ActionDescriptor{
			Code:      req.ActionType,
			ShortDesc: req.ShortDesc,
			Name:      req.ActionType,
			Images:    req.ActorImages,
		},
		UpdatedAt: now,
		ActionBy:  req.ComplainantID,
		ActorDetails: model.ActorDetails{
			UserID: ownerID,
			Name:   req.ActorName,
		},
		RefID:   req.RefID,
		RefType: req.RefType,
	}

	if err := s.store.UpdateFieldsAndAppendAction(ctx, issueID, fields, action); err != nil {
		return err
	}

	updated, err := s.store.FindByID(ctx, issueID, ownerID)
	if err != nil {
		return err
	}
	s.cache.Set(ctx, issueID, updated)
	s.emit(ctx, "issue.updated", issueID, updated)
	return nil
}

// resolveOwned находит текущее состояние issue с проверкой владельца.
// Снапшот из кеша авторитетен для отказа: несовпадение source_id — 403
// без обращения к store. Само же состояние всегда перечитывается из
// store: снапшот может отставать (Set best-effort, сбой записи молча
// глотается), а проверка уровня от устаревшего снапшота пропустила бы
// понижение. В строгом режиме кеш не участвует и в проверке владельца.
func (s *IssueService) resolveOwned(ctx context.Context, ownerID, issueID string) (*model.Issue, error) {
	if !s.strictOwnership {
		if snapshot, ok := s.cache.Get(ctx, issueID); ok && snapshot.SourceID != ownerID {
			return nil, errs.ErrNotOwner
		}
	}
	return s.store.FindByID(ctx, issueID, ownerID)
}

func (s *IssueService) emit(ctx context.Context, event, issueID string, issue *model.Issue) {
	if s.producer == nil {
		return
	}
	s.producer.ProduceIssueEvent(ctx, event, map[string]interface{}{
		"issue_id":         issueID,
		"network_issue_id": issue.NetworkIssueID,
		"transaction_id":   issue.TransactionID,
		"source_id":        issue.SourceID,
		"status":           string(issue.Status),
		"level":            string(issue.Level),
	})
}
