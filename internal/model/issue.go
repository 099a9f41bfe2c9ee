package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "OPEN"
	IssueStatusProcessing IssueStatus = "PROCESSING"
	IssueStatusResolved   IssueStatus = "RESOLVED"
	IssueStatusClosed     IssueStatus = "CLOSED"
)

type IssueLevel string

const (
	IssueLevelIssue     IssueLevel = "ISSUE"
	IssueLevelGrievance IssueLevel = "GRIEVANCE"
	IssueLevelDispute   IssueLevel = "DISPUTE"
)

// levelRank — порядок эскалации уровней. Понижение уровня запрещено.
var levelRank = map[IssueLevel]int{
	IssueLevelIssue:     1,
	IssueLevelGrievance: 2,
	IssueLevelDispute:   3,
}

func LevelRank(l IssueLevel) int {
	return levelRank[l]
}

// Сроки разрешения (ISO-8601 duration). При создании всегда действует
// срок уровня ISSUE независимо от переданного level.
const CreationResolutionDuration = "P1D"

var escalationResolutionDuration = map[IssueLevel]string{
	IssueLevelGrievance: "P7D",
	IssueLevelDispute:   "P28D",
}

// EscalationResolutionDuration возвращает срок для нового уровня.
// Для ISSUE срок не пересчитывается — ok == false.
func EscalationResolutionDuration(l IssueLevel) (string, bool) {
	d, ok := escalationResolutionDuration[l]
	return d, ok
}

type ResolutionTime struct {
	Duration string `bson:"duration" json:"duration"`
}

type Description struct {
	Code      string   `bson:"code" json:"code"`
	ShortDesc string   `bson:"short_desc" json:"short_desc"`
	LongDesc  string   `bson:"long_desc" json:"long_desc"`
	Images    []string `bson:"images,omitempty" json:"images,omitempty"`
	URL       string   `bson:"url,omitempty" json:"url,omitempty"`
}

type ActionDescriptor struct {
	Code      string   `bson:"code" json:"code"`
	ShortDesc string   `bson:"short_desc" json:"short_desc"`
	Name      string   `bson:"name,omitempty" json:"name,omitempty"`
	Images    []string `bson:"images,omitempty" json:"images,omitempty"`
}

type ActorDetails struct {
	UserID string `bson:"userId" json:"userId"`
	Name   string `bson:"name" json:"name"`
}

// Action — одна запись audit trail. После записи не изменяется и не
// удаляется, только добавляются новые.
type Action struct {
	ID           string           `bson:"id" json:"id"`
	Descriptor   ActionDescriptor `bson:"descriptor" json:"descriptor"`
	UpdatedAt    string           `bson:"updated_at" json:"updated_at"`
	ActionBy     string           `bson:"action_by" json:"action_by"`
	ActorDetails ActorDetails     `bson:"actor_details" json:"actor_details"`
	RefID        string           `bson:"ref_id,omitempty" json:"ref_id,omitempty"`
	RefType      string           `bson:"ref_type,omitempty" json:"ref_type,omitempty"`
}

type ResolutionDescriptor struct {
	Code      string `bson:"code" json:"code"`
	ShortDesc string `bson:"short_desc" json:"short_desc"`
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
}

type Resolution struct {
	ID         string               `bson:"id" json:"id"`
	UpdatedAt  string               `bson:"updated_at" json:"updated_at"`
	ProposedBy string               `bson:"proposed_by" json:"proposed_by"`
	Descriptor ResolutionDescriptor `bson:"descriptor" json:"descriptor"`
	RefID      string               `bson:"ref_id,omitempty" json:"ref_id,omitempty"`
	RefType    string               `bson:"ref_type,omitempty" json:"ref_type,omitempty"`
}

type OrgName struct {
	Name string `bson:"name" json:"name"`
}

type Contact struct {
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

type GroDetail struct {
	Type    string  `bson:"type" json:"type"`
	Org     OrgName `bson:"org" json:"org"`
	Person  OrgName `bson:"person" json:"person"`
	Contact Contact `bson:"contact" json:"contact"`
}

type ODRDetail struct {
	Type    string  `bson:"type" json:"type"`
	Org     OrgName `bson:"org" json:"org"`
	Person  OrgName `bson:"person" json:"person"`
	Contact Contact `bson:"contact" json:"contact"`
}

// Issue — документ коллекции "Issue". Идентификаторы и временные метки
// сериализуются строками, вложенные объекты сохраняются как есть.
type Issue struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	NetworkIssueID         string             `bson:"network_issue_id" json:"network_issue_id"`
	TransactionID          string             `bson:"transaction_id" json:"transaction_id"`
	Status                 IssueStatus        `bson:"status" json:"status"`
	Level                  IssueLevel         `bson:"level" json:"level"`
	ExpectedResolutionTime ResolutionTime     `bson:"expected_resolution_time" json:"expected_resolution_time"`
	ActualResolutionTime   string             `bson:"actual_resolution_time,omitempty" json:"actual_resolution_time,omitempty"`
	ComplainantID          string             `bson:"complainant_id" json:"complainant_id"`
	SourceID               string             `bson:"source_id" json:"source_id"`
	OrderID                string             `bson:"order_id" json:"order_id"`
	ItemID                 string             `bson:"item_id" json:"item_id"`
	RespondentIDs          []string           `bson:"respondent_ids,omitempty" json:"respondent_ids,omitempty"`
	Description            Description        `bson:"description" json:"description"`
	Actions                []Action           `bson:"actions" json:"actions"`
	Resolution             []Resolution       `bson:"resolution,omitempty" json:"resolution,omitempty"`
	GroDetails             []GroDetail        `bson:"gro_details,omitempty" json:"gro_details,omitempty"`
	FinalizedODR           *ODRDetail         `bson:"finalized_odr,omitempty" json:"finalized_odr,omitempty"`

	IsActive  bool   `bson:"is_active" json:"is_active"`
	CreatedAt string `bson:"created_at" json:"created_at"`
	UpdatedAt string `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// UTCNowISO — текущее время в UTC, миллисекунды, суффикс "Z"
// (формат timestamp сети: 2006-01-02T15:04:05.000Z).
func UTCNowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
