// Chat HTTP handlers.
//
// This file exposes the chat endpoints:
//   - POST /api/chat/create
//   - GET  /api/chat/getAllChatIds      (newest first)
//   - GET  /api/chat/messages/:roomId   (transcript, oldest first)
//   - POST /api/chat/userQuery          (one query turn)
//   - POST /api/chat/fileUpload         (multipart upload acknowledgment)
//
// Handlers are transport-thin: they validate input, call the orchestrator,
// and translate sentinel errors into HTTP responses. Raw store or provider
// errors never reach the client.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
	"github.com/yatinsingh2007/ReportLens-AI/internal/gateway"
	"github.com/yatinsingh2007/ReportLens-AI/internal/http/middleware"
	"github.com/yatinsingh2007/ReportLens-AI/internal/services"
)

//
// Service contracts (context-aware)
//

// ChatService defines the orchestrator operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type ChatService interface {
	// CreateChat starts a new empty chat owned by userID.
	CreateChat(ctx context.Context, userID string) (*domain.Chat, error)
	// ListChats returns the user's chat summaries newest-first, or
	// services.ErrNoChats when the user has none yet.
	ListChats(ctx context.Context, userID string) ([]domain.ChatSummary, error)
	// SubmitQuery runs one query turn and returns the full transcript.
	SubmitQuery(ctx context.Context, userID, chatID, query string) ([]domain.Message, error)
	// Messages returns the ordered transcript of an owned chat.
	Messages(ctx context.Context, userID, chatID string) ([]domain.Message, error)
	// RecordUpload appends an upload-marker message to the chat.
	RecordUpload(ctx context.Context, userID, chatID, filename string) (*domain.Message, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for auth and chats. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	authSvc AuthService
	chatSvc ChatService
}

// New constructs a Handlers instance bound to the given services.
func New(authSvc AuthService, chatSvc ChatService) *Handlers {
	return &Handlers{authSvc: authSvc, chatSvc: chatSvc}
}

// UserQueryRequest is the JSON payload for one query turn.
type UserQueryRequest struct {
	Query  string `json:"query" example:"What is my glucose level?"`
	ChatID string `json:"chatId" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

// CreateChat godoc
// @ID          createChat
// @Summary     Create a new chat
// @Tags        Chats
// @Produce     json
// @Success     201  {object}  map[string]string
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/chat/create [post]
func (h *Handlers) CreateChat(c *gin.Context) {
	_, err := h.chatSvc.CreateChat(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Internal Server Error")
		return
	}
	ok(c, http.StatusCreated, gin.H{"message": "chat created successfully"})
}

// ListChats godoc
// @ID          getAllChatIds
// @Summary     List the user's chats, newest first
// @Description A user with zero chats gets 404 (the onboarding state),
// @Description which is distinct from a store failure (500).
// @Tags        Chats
// @Produce     json
// @Success     200  {array}   domain.ChatSummary
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "No chats yet"
// @Router      /api/chat/getAllChatIds [get]
func (h *Handlers) ListChats(c *gin.Context) {
	chats, err := h.chatSvc.ListChats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		case errors.Is(err, services.ErrNoChats):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Not Found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "Internal Server Error")
		}
		return
	}
	ok(c, http.StatusOK, chats)
}

// GetMessages godoc
// @ID          getMessages
// @Summary     Full transcript of a chat, oldest first
// @Tags        Chats
// @Produce     json
// @Param       roomId  path  string  true  "Chat ID (UUID)"
// @Success     200  {array}   domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Missing roomId"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the chat owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Router      /api/chat/messages/{roomId} [get]
func (h *Handlers) GetMessages(c *gin.Context) {
	roomID := strings.TrimSpace(c.Param("roomId"))
	if roomID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "roomId is required")
		return
	}

	msgs, err := h.chatSvc.Messages(c.Request.Context(), middleware.UserID(c), roomID)
	if err != nil {
		h.failChatError(c, err)
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	ok(c, http.StatusOK, msgs)
}

// UserQuery godoc
// @ID          userQuery
// @Summary     Submit one query turn
// @Description Appends the user question, invokes the model, appends the AI
// @Description answer, and returns the full ordered transcript. If
// @Description generation fails the question stays recorded and the turn
// @Description reports 502.
// @Tags        Chats
// @Accept      json
// @Produce     json
// @Success     200  {array}   domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Missing query/chatId"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not the chat owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /api/chat/userQuery [post]
func (h *Handlers) UserQuery(c *gin.Context) {
	var req UserQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.CountQueryTurn("rejected")
		fail(c, http.StatusBadRequest, ErrCodeBadRequest,
			"User did not Provide any Input or question to ask or No ChatRoom Identification.")
		return
	}

	msgs, err := h.chatSvc.SubmitQuery(c.Request.Context(), middleware.UserID(c), req.ChatID, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyQuery):
			middleware.CountQueryTurn("rejected")
			fail(c, http.StatusBadRequest, ErrCodeBadRequest,
				"User did not Provide any Input or question to ask or No ChatRoom Identification.")
		case errors.Is(err, services.ErrUnauthorized):
			middleware.CountQueryTurn("rejected")
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		case errors.Is(err, services.ErrChatNotFound):
			middleware.CountQueryTurn("rejected")
			fail(c, http.StatusNotFound, ErrCodeNotFound, "No such ChatRoom exists")
		case errors.Is(err, services.ErrChatForbidden):
			middleware.CountQueryTurn("rejected")
			fail(c, http.StatusForbidden, ErrCodeForbidden, "Forbidden")
		case errors.Is(err, gateway.ErrGenerationFailed):
			middleware.CountQueryTurn("generation_failed")
			fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "Answer generation failed")
		default:
			middleware.CountQueryTurn("persistence_failed")
			fail(c, http.StatusInternalServerError, ErrCodePersistenceFailed, "Internal Server Error")
		}
		return
	}
	middleware.CountQueryTurn("ok")
	ok(c, http.StatusOK, msgs)
}

// FileUpload godoc
// @ID          fileUpload
// @Summary     Accept a document upload
// @Description Accepts a multipart file and acknowledges it. When a chatId
// @Description form field accompanies the file, an upload-marker message is
// @Description appended to that chat's transcript and returned.
// @Tags        Chats
// @Accept      multipart/form-data
// @Produce     json
// @Success     200  {object}  map[string]any
// @Failure     400  {object}  handlers.ErrorResponse  "Missing file"
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/chat/fileUpload [post]
func (h *Handlers) FileUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "file is required")
		return
	}

	lg := middleware.LoggerFrom(c)
	lg.Info().
		Str("filename", file.Filename).
		Int64("size", file.Size).
		Msg("file received")

	chatID := strings.TrimSpace(c.PostForm("chatId"))
	if chatID == "" {
		ok(c, http.StatusOK, gin.H{"message": "File uploaded successfully"})
		return
	}

	msg, err := h.chatSvc.RecordUpload(c.Request.Context(), middleware.UserID(c), chatID, file.Filename)
	if err != nil {
		h.failChatError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "File uploaded successfully", "inserted": msg})
}

// failChatError maps the shared chat-access sentinels to HTTP responses.
func (h *Handlers) failChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrChatNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "No such ChatRoom exists")
	case errors.Is(err, services.ErrChatForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "Forbidden")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Internal Server Error")
	}
}
