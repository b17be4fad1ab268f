package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pocketledger/internal/common"
	"pocketledger/internal/server/models"
	"pocketledger/internal/server/services"
)

// UserService is the authentication surface the HTTP layer depends on.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(tokenString string) (*models.Identity, error)
}

// EntryService is the ledger surface the HTTP layer depends on.
type EntryService interface {
	Create(ctx context.Context, ownerID string, in *services.EntryInput) (*models.Entry, error)
	List(ctx context.Context, ownerID string) ([]*models.Entry, error)
	Update(ctx context.Context, ownerID, entryID string, in *services.EntryInput) (int64, error)
	Delete(ctx context.Context, ownerID, entryID string) (int64, error)
	Summarize(ctx context.Context, ownerID string) ([]*models.MonthlySummary, error)
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type entryReq struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type entryResp struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type summaryResp struct {
	Period       string  `json:"period"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
}

func (r *entryReq) toInput() *services.EntryInput {
	return &services.EntryInput{
		Type:        r.Type,
		Amount:      decimal.NewFromFloat(r.Amount),
		Date:        r.Date,
		Description: r.Description,
	}
}

func toEntryResp(e *models.Entry) entryResp {
	return entryResp{
		ID:          e.ID,
		Type:        e.Type,
		Amount:      e.Amount.InexactFloat64(),
		Date:        e.Date,
		Description: e.Description,
	}
}

func (s *Server) register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "username", user.Username)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		writeError(c, common.ErrNoToken)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID, "username": identity.Username})
}

func (s *Server) createEntry(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		writeError(c, common.ErrNoToken)
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	entry, err := s.entries.Create(c.Request.Context(), identity.UserID, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": entry.ID})
}

func (s *Server) listEntries(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		writeError(c, common.ErrNoToken)
		return
	}

	entries, err := s.entries.List(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]entryResp, 0, len(entries))
	for _, e := range entries {
		items = append(items, toEntryResp(e))
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) updateEntry(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		writeError(c, common.ErrNoToken)
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	updated, err := s.entries.Update(c.Request.Context(), identity.UserID, c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (s *Server) deleteEntry(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		writeError(c, common.ErrNoToken)
		return
	}

	deleted, err := s.entries.Delete(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) summary(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		writeError(c, common.ErrNoToken)
		return
	}

	buckets, err := s.entries.Summarize(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]summaryResp, 0, len(buckets))
	for _, b := range buckets {
		items = append(items, summaryResp{
			Period:       b.Period,
			TotalIncome:  b.TotalIncome.InexactFloat64(),
			TotalExpense: b.TotalExpense.InexactFloat64(),
		})
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) healthz(c *gin.Context) {
	if !s.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
