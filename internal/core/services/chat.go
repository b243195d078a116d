package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
	"github.com/custodia-labs/ragdesk/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatCoordinator = (*ChatService)(nil)

// ChatService runs one question at a time against the answering service
// and holds the live turn.
type ChatService struct {
	answers driven.AnswerGateway
	busy    *BusyTracker
	toasts  *ToastQueue
	topK    int

	mu   sync.RWMutex
	turn domain.ChatTurn
}

// NewChatService creates a chat service requesting topK contexts per question.
func NewChatService(answers driven.AnswerGateway, toasts *ToastQueue, topK int) *ChatService {
	if toasts == nil {
		toasts = NewToastQueue(0)
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &ChatService{
		answers: answers,
		busy:    NewBusyTracker(),
		toasts:  toasts,
		topK:    topK,
		turn:    domain.ChatTurn{Contexts: []domain.Hit{}},
	}
}

// Ask sends question to the answering service. Blank input is rejected
// locally. While the request is in flight the previous answer and contexts
// are cleared.
func (s *ChatService) Ask(ctx context.Context, question string) (domain.ChatTurn, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		s.toasts.Error("enter a question first")
		return s.Turn(), domain.ErrEmptyQuestion
	}
	if !s.busy.TryBegin(domain.OpAsk) {
		return s.Turn(), domain.ErrOperationBusy
	}
	defer s.busy.End(domain.OpAsk)

	s.mu.Lock()
	s.turn = domain.ChatTurn{Question: question, Contexts: []domain.Hit{}}
	s.mu.Unlock()

	logger.Section("Ask")
	logger.Debug("Question: %q top_k=%d", question, s.topK)

	answer, err := s.answers.Ask(ctx, question, s.topK)
	if err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			logger.Warn("ask: upstream status=%d detail=%q", upstream.Status, upstream.Detail)
		} else {
			logger.Warn("ask: %v", err)
		}
		s.toasts.Error(fmt.Sprintf("request failed: %s", err))
		return s.Turn(), err
	}

	turn := domain.ChatTurn{Question: question, Contexts: []domain.Hit{}}
	if answer != nil {
		turn.Answer = answer.Answer
		if answer.Contexts != nil {
			turn.Contexts = answer.Contexts
		}
	}

	s.mu.Lock()
	s.turn = turn
	s.mu.Unlock()

	logger.Debug("Answer received with %d contexts", len(turn.Contexts))
	s.toasts.OK("answer ready")
	return s.Turn(), nil
}

// Turn returns a copy of the live turn.
func (s *ChatService) Turn() domain.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turn := s.turn
	turn.Contexts = append([]domain.Hit{}, s.turn.Contexts...)
	return turn
}

// AverageScore returns the mean context score of the live turn.
func (s *ChatService) AverageScore() (float64, bool) {
	return s.Turn().AverageScore()
}

// Busy returns the busy state of the workflow.
func (s *ChatService) Busy() driving.BusyState {
	return s.busy
}

// Toasts returns the workflow's notification slot.
func (s *ChatService) Toasts() driving.ToastSource {
	return s.toasts
}
