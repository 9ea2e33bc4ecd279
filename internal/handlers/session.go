package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forgelabs/forge-backend/internal/platform/ctxutil"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/services"
)

type SessionHandler struct {
	log       *logger.Logger
	registry  services.SessionRegistry
	intakeSvc services.IntakeService
	assembler services.AssemblerService
}

func NewSessionHandler(log *logger.Logger, registry services.SessionRegistry, intakeSvc services.IntakeService, assembler services.AssemblerService) *SessionHandler {
	return &SessionHandler{
		log:       log.With("handler", "SessionHandler"),
		registry:  registry,
		intakeSvc: intakeSvc,
		assembler: assembler,
	}
}

func sessionView(entry *services.SessionEntry) gin.H {
	sess := entry.Session
	missing := sess.MissingFields()
	if missing == nil {
		missing = []string{}
	}
	return gin.H{
		"id":              sess.ID,
		"goal":            sess.Goal,
		"goal_locked":     sess.GoalLocked,
		"state":           sess.State(),
		"fields":          sess.Fields,
		"missing_fields":  missing,
		"package_seq":     sess.PackageSeq,
		"created_at":      sess.CreatedAt,
		"resources":       entry.Ledger.Snapshot(),
	}
}

// POST /api/v2/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var body struct {
		AllowNSFW bool `json:"allow_nsfw"`
	}
	// An empty body is fine; only decode failures on present bodies matter.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	entry := h.registry.Create()
	entry.Session.AllowNSFW = body.AllowNSFW
	RespondOK(c, sessionView(entry))
}

// GET /api/v2/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	h.withSession(c, func(entry *services.SessionEntry) {
		RespondOK(c, sessionView(entry))
	})
}

// DELETE /api/v2/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	if !h.registry.Delete(id) {
		RespondError(c, http.StatusNotFound, "unknown_session", errors.New("session not found"))
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// POST /api/v2/sessions/:id/goal
// { goal }
func (h *SessionHandler) SetGoal(c *gin.Context) {
	var body struct {
		Goal string `json:"goal"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	h.withSession(c, func(entry *services.SessionEntry) {
		if f := h.intakeSvc.SetGoal(entry.Session, body.Goal); f != nil {
			RespondFault(c, f)
			return
		}
		RespondOK(c, sessionView(entry))
	})
}

// POST /api/v2/sessions/:id/fields
// { name, value }
func (h *SessionHandler) SetField(c *gin.Context) {
	var body struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	h.withSession(c, func(entry *services.SessionEntry) {
		if f := h.intakeSvc.SetField(entry.Session, body.Name, body.Value); f != nil {
			RespondFault(c, f)
			return
		}
		RespondOK(c, sessionView(entry))
	})
}

// POST /api/v2/sessions/:id/unlock
// { target } where target is a field name, "goal" or "all"
func (h *SessionHandler) Unlock(c *gin.Context) {
	var body struct {
		Target string `json:"target"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	h.withSession(c, func(entry *services.SessionEntry) {
		if f := h.intakeSvc.Unlock(entry.Session, body.Target); f != nil {
			RespondFault(c, f)
			return
		}
		RespondOK(c, sessionView(entry))
	})
}

// POST /api/v2/sessions/:id/optimise
// { resources?, overrides?, weights?, profile?, caption? }
func (h *SessionHandler) Optimise(c *gin.Context) {
	var opts services.RunOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	h.withSession(c, func(entry *services.SessionEntry) {
		pkg, f := h.assembler.Run(entry, opts)
		if f != nil {
			RespondFault(c, f)
			return
		}
		RespondOK(c, gin.H{"outcome": "success", "result": pkg})
	})
}

func (h *SessionHandler) withSession(c *gin.Context, fn func(*services.SessionEntry)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{SessionID: id})
	c.Request = c.Request.WithContext(ctx)
	if !h.registry.With(id, fn) {
		RespondError(c, http.StatusNotFound, "unknown_session", errors.New("session not found"))
	}
}
