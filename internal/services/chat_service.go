// Package services – ChatService
//
// This file implements the chat orchestrator: the per-request state machine
// that validates identity and ownership, appends the user message, renders
// the prompt, invokes the model gateway, appends the AI message, and
// returns the full ordered transcript.
//
// A query turn is a saga, not a transaction: the user-message write, the
// model call, and the AI-message write are sequential steps with defined
// partial-failure outcomes. If generation fails after the user message was
// written, that message stays recorded: the transcript shows an unanswered
// question and nothing is retried automatically. Turns on the same chat are
// serialized by a per-chat lock so concurrent submissions cannot interleave
// their message pairs.
//
// Observability: SubmitQuery and Messages are OpenTelemetry-instrumented;
// spans carry chat/user identifiers.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
	"github.com/yatinsingh2007/ReportLens-AI/internal/gateway"
	"github.com/yatinsingh2007/ReportLens-AI/internal/prompt"
	"github.com/yatinsingh2007/ReportLens-AI/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// uploadMarkerPrefix tags transcript entries that record a file upload
// rather than a typed question.
const uploadMarkerPrefix = "[file] "

// ChatService coordinates chat lifecycle and query turns. All state lives
// in the store; the service itself only holds its collaborators and the
// per-chat lock table, so one instance serves all requests.
type ChatService struct {
	DB       *gorm.DB
	Renderer *prompt.Renderer
	Gateway  gateway.Completer

	locks chatLocks
}

// NewChatService constructs a ChatService around an open DB handle, the
// prompt renderer, and the injected model gateway.
func NewChatService(db *gorm.DB, r *prompt.Renderer, g gateway.Completer) *ChatService {
	return &ChatService{DB: db, Renderer: r, Gateway: g}
}

// CreateChat persists a new empty chat owned by userID. The transcript is
// empty by construction, so only the chat row is returned.
func (s *ChatService) CreateChat(ctx context.Context, userID string) (*domain.Chat, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return repo.CreateChat(ctx, s.DB, userID)
}

// ListChats returns the user's chat summaries, newest first. Zero chats is
// the distinguished ErrNoChats outcome, never conflated with a store error.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]domain.ChatSummary, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	chats, err := repo.ListChats(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return nil, ErrNoChats
	}
	out := make([]domain.ChatSummary, 0, len(chats))
	for _, c := range chats {
		out = append(out, domain.ChatSummary{ID: c.ID, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// SubmitQuery runs one query turn and returns the full ascending transcript.
//
// Step order is load-bearing: the user message must be durable before the
// model is invoked, and the AI message must be durable before the turn is
// reported successful. Failure at any step maps to a sentinel the handler
// can translate:
//
//	empty query          -> ErrEmptyQuery (nothing written)
//	chat missing         -> ErrChatNotFound (nothing written)
//	foreign chat         -> ErrChatForbidden (nothing written)
//	user-message write   -> store error, model never invoked
//	model call           -> gateway.ErrGenerationFailed, user message stays
//	AI-message write     -> store error, user message stays
func (s *ChatService) SubmitQuery(ctx context.Context, userID, chatID, query string) ([]domain.Message, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "SubmitQuery",
		trace.WithAttributes(
			attribute.String("chat.id", chatID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	if userID == "" {
		return nil, ErrUnauthorized
	}
	query = strings.TrimSpace(query)
	if query == "" || chatID == "" {
		return nil, ErrEmptyQuery
	}

	// Serialize turns per chat so two concurrent submissions cannot
	// interleave their user/AI message pairs.
	unlock := s.locks.lock(chatID)
	defer unlock()

	chat, err := repo.GetChat(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if chat.UserID != userID {
		return nil, ErrChatForbidden
	}

	// Render before the user-message write: a broken template should not
	// leave an unanswered question in the transcript.
	rendered, err := s.Renderer.Render(query)
	if err != nil {
		if errors.Is(err, prompt.ErrEmptyQuestion) {
			return nil, ErrEmptyQuery
		}
		return nil, err
	}

	if _, err := repo.CreateMessage(ctx, s.DB, chatID, domain.RoleUser, query); err != nil {
		return nil, err
	}

	answer, err := s.Gateway.Complete(ctx, rendered)
	if err != nil {
		// The user message stays recorded; the transcript will show an
		// unanswered turn on the next read.
		return nil, err
	}

	if _, err := repo.CreateMessage(ctx, s.DB, chatID, domain.RoleAI, answer); err != nil {
		return nil, err
	}

	return repo.ListMessages(ctx, s.DB, chatID)
}

// Messages returns the ordered transcript for a chat the user owns.
// An existing chat with no messages yields an empty slice.
func (s *ChatService) Messages(ctx context.Context, userID, chatID string) ([]domain.Message, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Messages",
		trace.WithAttributes(attribute.String("chat.id", chatID)),
	)
	defer span.End()

	if userID == "" {
		return nil, ErrUnauthorized
	}
	chat, err := repo.GetChat(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if chat.UserID != userID {
		return nil, ErrChatForbidden
	}
	return repo.ListMessages(ctx, s.DB, chatID)
}

// RecordUpload appends an upload-marker message (role User, content
// "[file] <name>") to the chat so the upload event shows up in the
// transcript like a normal turn. No content extraction is performed.
func (s *ChatService) RecordUpload(ctx context.Context, userID, chatID, filename string) (*domain.Message, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	chat, err := repo.GetChat(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if chat.UserID != userID {
		return nil, ErrChatForbidden
	}
	return repo.CreateMessage(ctx, s.DB, chatID, domain.RoleUser, uploadMarkerPrefix+filename)
}

// chatLocks is a keyed mutex table guarding the read-modify-write sequence
// of a turn. Entries are reference-counted and removed when the last holder
// releases, so the table does not grow with chat history.
type chatLocks struct {
	mu sync.Mutex
	m  map[string]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

func (l *chatLocks) lock(chatID string) (unlock func()) {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*chatLock)
	}
	e, ok := l.m[chatID]
	if !ok {
		e = &chatLock{}
		l.m[chatID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, chatID)
		}
		l.mu.Unlock()
	}
}
