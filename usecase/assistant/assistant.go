package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tasknest/backend/domain"
	appLogger "github.com/tasknest/backend/pkg/logger"
	"github.com/tasknest/backend/repository"
	"github.com/tasknest/backend/usecase"
)

// historyWindow caps how much conversation history is sent upstream; only
// the stored log itself grows unbounded.
const historyWindow = 10

const recommendSystemPrompt = "You are a helpful project management assistant. Analyze the task " +
	"and its progress notes, then provide actionable recommendations. " +
	"Be concise and practical. Format your response with these sections:\n" +
	"📋 Summary | ⚡ Next Steps | ⏱️ Time Estimate | ⚠️ Potential Blockers | 🎯 Priority"

const chatSystemPrompt = "You are a smart task management assistant. You have access to the user's " +
	"current tasks listed below. Help them with task planning, prioritization, " +
	"progress tracking, and general productivity advice. Be friendly and concise.\n\n" +
	"USER'S TASKS:\n%s"

// Config carries the token budgets for the two completion kinds.
type Config struct {
	RecommendMaxTokens int
	ChatMaxTokens      int
}

type UseCase struct {
	tasks   repository.TaskRepository
	notes   repository.NoteRepository
	chatLog repository.ChatLogRepository
	gateway usecase.CompletionGateway
	cfg     Config
	logger  *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	notes repository.NoteRepository,
	chatLog repository.ChatLogRepository,
	gateway usecase.CompletionGateway,
	cfg Config,
	logger *zap.Logger,
) *UseCase {
	if cfg.RecommendMaxTokens <= 0 {
		cfg.RecommendMaxTokens = 1024
	}
	if cfg.ChatMaxTokens <= 0 {
		cfg.ChatMaxTokens = 512
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:   tasks,
		notes:   notes,
		chatLog: chatLog,
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

// Recommend asks the gateway for structured recommendations on one task,
// embedding the task's fields and its chronological note history.
func (uc *UseCase) Recommend(ctx context.Context, taskID string) (string, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return "", err
	}
	task.RefreshStatus(time.Now().UTC())
	notes, err := uc.notes.ListByTask(ctx, taskID)
	if err != nil {
		return "", err
	}

	reply, err := uc.gateway.Complete(ctx, usecase.Completion{
		System: recommendSystemPrompt,
		Messages: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: recommendUserPrompt(task, notes)},
		},
		MaxTokens: uc.cfg.RecommendMaxTokens,
	})
	if err != nil {
		return "", err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("recommendation generated", zap.String("task_id", taskID))
	return reply, nil
}

// Chat sends a user message with the current task list as system context.
// When the caller supplies no history, the process-wide chat log is used;
// either way only the most recent entries are forwarded. The exchange is
// appended to the stored log after a successful reply.
func (uc *UseCase) Chat(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "Message is required")
	}

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return "", err
	}

	if history == nil {
		history, err = uc.chatLog.Recent(ctx, 0)
		if err != nil {
			return "", err
		}
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: message})

	reply, err := uc.gateway.Complete(ctx, usecase.Completion{
		System:    fmt.Sprintf(chatSystemPrompt, uc.taskSummary(ctx, tasks)),
		Messages:  messages,
		MaxTokens: uc.cfg.ChatMaxTokens,
	})
	if err != nil {
		return "", err
	}

	if err := uc.chatLog.Append(ctx,
		domain.ChatMessage{Role: domain.RoleUser, Content: message},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: reply},
	); err != nil {
		uc.logger.Warn("chat history append failed", zap.Error(err))
	}
	return reply, nil
}

func recommendUserPrompt(task *domain.Task, notes []domain.Note) string {
	var lines []string
	for _, n := range notes {
		lines = append(lines, fmt.Sprintf("  - [%s] %s", n.CreatedAt.Format(time.RFC3339), n.Content))
	}
	notesText := strings.Join(lines, "\n")
	if notesText == "" {
		notesText = "  (no notes yet)"
	}

	description := task.Description
	if description == "" {
		description = "N/A"
	}

	return fmt.Sprintf(
		"Task: %s\nDescription: %s\nStatus: %s\nCreated: %s\nProgress Notes:\n%s",
		task.Title,
		description,
		task.Status,
		task.CreatedAt.Format(time.RFC3339),
		notesText,
	)
}

// taskSummary renders the task-context block. Statuses are refreshed
// against the current time so the prompt never reports a stale state.
func (uc *UseCase) taskSummary(ctx context.Context, tasks []domain.Task) string {
	if len(tasks) == 0 {
		return "(no tasks)"
	}
	now := time.Now().UTC()
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		t.RefreshStatus(now)
		count, err := uc.notes.CountByTask(ctx, t.ID)
		if err != nil {
			count = 0
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s (%d notes)",
			strings.ToUpper(string(t.Status)), t.Title, count))
	}
	return strings.Join(lines, "\n")
}
