package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/assignment-manager/api-go/internal/db"
	"github.com/gin-gonic/gin"
)

// AssignmentStore is the storage collaborator behind the CRUD handlers.
// *db.DB implements it; tests substitute a fake.
type AssignmentStore interface {
	ListAssignments(ctx context.Context) ([]db.Assignment, error)
	CreateAssignment(ctx context.Context, a db.Assignment) (int64, error)
	UpdateAssignment(ctx context.Context, id int64, a db.Assignment) (int64, error)
	DeleteAssignment(ctx context.Context, id int64) error
}

type Assignments struct {
	store   AssignmentStore
	timeout time.Duration
}

func NewAssignments(s AssignmentStore, timeout time.Duration) *Assignments {
	return &Assignments{store: s, timeout: timeout}
}

// ctx bounds every store call so pool exhaustion fails the request instead
// of hanging it.
func (h *Assignments) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

type assignmentInput struct {
	AssignmentName string `json:"assignmentname"`
	DueDate        string `json:"duedate"`
	Status         string `json:"status"`
}

// bindInput enforces the presence invariant: all three fields non-empty.
func bindInput(c *gin.Context) (db.Assignment, bool) {
	var in assignmentInput
	if err := c.ShouldBindJSON(&in); err != nil ||
		in.AssignmentName == "" || in.DueDate == "" || in.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignmentname, duedate and status are required"})
		return db.Assignment{}, false
	}
	return db.Assignment{
		AssignmentName: in.AssignmentName,
		DueDate:        in.DueDate,
		Status:         in.Status,
	}, true
}

// idParam parses the :id path segment. The id space is integral, so a
// non-integer can never name an existing row and reads as not found.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return 0, false
	}
	return id, true
}

func (h *Assignments) List(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	as, err := h.store.ListAssignments(ctx)
	if err != nil {
		log.Printf("listing assignments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error for getting all assignments"})
		return
	}
	if as == nil {
		as = []db.Assignment{}
	}
	c.JSON(http.StatusOK, as)
}

func (h *Assignments) Create(c *gin.Context) {
	a, ok := bindInput(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	id, err := h.store.CreateAssignment(ctx, a)
	if err != nil {
		log.Printf("adding assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error for adding an assignment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Assignments) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, ok := bindInput(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	affected, err := h.store.UpdateAssignment(ctx, id, a)
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	case err != nil:
		log.Printf("updating assignment %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error for updating an assignment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment updated", "affected_rows": affected})
}

func (h *Assignments) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	err := h.store.DeleteAssignment(ctx, id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	case err != nil:
		log.Printf("deleting assignment %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error for deleting an assignment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted", "affected_rows": 1})
}
