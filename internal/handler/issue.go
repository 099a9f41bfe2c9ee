package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/psds-microservice/issue-service/internal/errs"
	"github.com/psds-microservice/issue-service/internal/model"
	"github.com/psds-microservice/issue-service/internal/service"
)

type IssueHandler struct {
	svc service.IssueServicer
}

func NewIssueHandler(svc service.IssueServicer) *IssueHandler {
	return &IssueHandler{svc: svc}
}

type descriptionBody struct {
	Code      string   `json:"code" binding:"required"`
	ShortDesc string   `json:"short_desc" binding:"required"`
	LongDesc  string   `json:"long_desc" binding:"required"`
	Images    []string `json:"images"`
	URL       string   `json:"url"`
}

type createIssueRequest struct {
	TransactionID string          `json:"transaction_id" binding:"required"`
	Status        string          `json:"status" binding:"required,oneof=OPEN PROCESSING RESOLVED CLOSED"`
	Level         string          `json:"level" binding:"required,oneof=ISSUE GRIEVANCE DISPUTE"`
	ComplainantID string          `json:"complainant_id" binding:"required"`
	SourceID      string          `json:"source_id" binding:"required"`
	OrderID       string          `json:"order_id" binding:"required"`
	ItemID        string          `json:"item_id" binding:"required"`
	Description   descriptionBody `json:"description" binding:"required"`
	RefID         string          `json:"ref_id"`
	RefType       string          `json:"ref_type"`
	ActorName     string          `json:"actor_name" binding:"required"`
}

func (h *IssueHandler) Create(c *gin.Context) {
	var req createIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	networkIssueID, issueID, err := h.svc.Create(c.Request.Context(), service.CreateIssueRequest{
		TransactionID: req.TransactionID,
		Status:        model.IssueStatus(req.Status),
		Level:         model.IssueLevel(req.Level),
		ComplainantID: req.ComplainantID,
		SourceID:      req.SourceID,
		OrderID:       req.OrderID,
		ItemID:        req.ItemID,
		Description: model.Description{
			Code:      req.Description.Code,
			ShortDesc: req.Description.ShortDesc,
			LongDesc:  req.Description.LongDesc,
			Images:    req.Description.Images,
			URL:       req.Description.URL,
		},
		RefID:     req.RefID,
		RefType:   req.RefType,
		ActorName: req.ActorName,
	})
	if err != nil {
		log.Printf("handler: create issue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create issue"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":          "Issue created successfully",
		"network_issue_id": networkIssueID,
		"issue_id":         issueID,
	})
}

func (h *IssueHandler) List(c *gin.Context) {
	ownerID := c.Param("userId")

	// Дефолты исходного API: offset=1 (страницы с единицы), limit=10.
	// Ноль и отрицательные значения отбрасываются вместе с мусором.
	offset := 1
	limit := 10
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	issues, err := h.svc.List(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		log.Printf("handler: list issues for %s: %v", ownerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list issues"})
		return
	}
	if issues == nil {
		issues = []model.Issue{}
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Issues fetched successfully",
		"data":    issues,
	})
}

func (h *IssueHandler) Get(c *gin.Context) {
	ownerID := c.Param("userId")
	issueID := c.Param("issueId")

	issue, err := h.svc.Get(c.Request.Context(), ownerID, issueID)
	if err != nil {
		if errors.Is(err, errs.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found with this id"})
			return
		}
		log.Printf("handler: get issue %s: %v", issueID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get issue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Issue fetched successfully",
		"data":    issue,
	})
}

type updateIssueRequest struct {
	Status        string   `json:"status" binding:"omitempty,oneof=OPEN PROCESSING RESOLVED CLOSED"`
	Level         string   `json:"level" binding:"omitempty,oneof=ISSUE GRIEVANCE DISPUTE"`
	ActionType    string   `json:"action_type" binding:"required"`
	ShortDesc     string   `json:"short_desc" binding:"required"`
	ActorName     string   `json:"actor_name" binding:"required"`
	ActorImages   []string `json:"actor_images"`
	RefID         string   `json:"ref_id"`
	RefType       string   `json:"ref_type"`
	ComplainantID string   `json:"complainant_id" binding:"required"`
}

func (h *IssueHandler) Update(c *gin.Context) {
	ownerID := c.Param("userId")
	issueID := c.Param("issueId")

	var req updateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	err := h.svc.Update(c.Request.Context(), ownerID, issueID, service.UpdateIssueRequest{
		Status:        model.IssueStatus(req.Status),
		Level:         model.IssueLevel(req.Level),
		ActionType:    req.ActionType,
		ShortDesc:     req.ShortDesc,
		ActorName:     req.ActorName,
		ActorImages:   req.ActorImages,
		RefID:         req.RefID,
		RefType:       req.RefType,
		ComplainantID: req.ComplainantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrIssueNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found with this id"})
		case errors.Is(err, errs.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "issue belongs to another source"})
		case errors.Is(err, errs.ErrLevelDowngrade):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot downgrade the issue level"})
		default:
			log.Printf("handler: update issue %s: %v", issueID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update issue"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue updated successfully"})
}
