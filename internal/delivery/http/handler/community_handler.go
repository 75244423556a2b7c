package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/realtime"
	"github.com/wellgym/wellgym-backend/internal/usecase/community"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origin; the bearer token is the
	// actual gate.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type CommunityHandler struct {
	communityUseCase *community.UseCase
	hub              *realtime.Hub
	logger           *zap.Logger
}

func NewCommunityHandler(communityUseCase *community.UseCase, hub *realtime.Hub, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{
		communityUseCase: communityUseCase,
		hub:              hub,
		logger:           logger,
	}
}

// ListMessages handles GET /community/messages?limit=N.
func (h *CommunityHandler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	messages, err := h.communityUseCase.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

type postMessageRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}

// PostMessage handles POST /community/messages.
func (h *CommunityHandler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	m, err := h.communityUseCase.Post(c.Request.Context(), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Subscribe handles GET /community/ws: upgrades the connection and keeps it
// registered until the client goes away. The read loop exists only to detect
// disconnects; clients receive pushes, they do not send.
func (h *CommunityHandler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	var userID string
	if v, ok := c.Get("identity"); ok {
		if identity, ok := v.(*domain.Identity); ok {
			userID = identity.ID
		}
	}

	client := realtime.NewClient(userID, conn)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
