package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fragbot/pkg/fragment"
)

// Workflows is the orchestrator surface the bot invokes. Satisfied by
// *fragment.Orchestrator; tests substitute a fake.
type Workflows interface {
	Connect(ctx context.Context) (string, error)
	AwaitHandshake(ctx context.Context) error
	LookupCode(ctx context.Context, identifierFragment string) (*fragment.LookupResult, error)
	Logout()
}

// Bot routes Telegram commands and inline queries to the workflows and
// renders their outcomes. Workflow failures become reply text; the bot
// process itself never dies on one.
type Bot struct {
	api    *apiClient
	flows  Workflows
	logger logrus.FieldLogger

	pollTimeout  int
	retryBackoff time.Duration
}

// New creates a bot for the given token.
func New(token string, flows Workflows, logger logrus.FieldLogger) *Bot {
	return &Bot{
		api:          newAPIClient(token),
		flows:        flows,
		logger:       logger,
		pollTimeout:  30,
		retryBackoff: 5 * time.Second,
	}
}

// Run long-polls for updates until ctx is canceled. Each update is handled
// on its own goroutine; the orchestrator serializes page access underneath.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started; use /connect, /logout, or inline digits")

	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		updates, err := b.api.getUpdates(offset, b.pollTimeout)
		if err != nil {
			b.logger.WithError(err).Warn("polling updates failed")
			select {
			case <-time.After(b.retryBackoff):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			go b.dispatch(ctx, u)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, u update) {
	switch {
	case u.Message != nil && strings.HasPrefix(u.Message.Text, "/connect"):
		b.handleConnect(ctx, u.Message.Chat.ID)
	case u.Message != nil && strings.HasPrefix(u.Message.Text, "/logout"):
		b.handleLogout(u.Message.Chat.ID)
	case u.CallbackQuery != nil && u.CallbackQuery.Data == "logout":
		if err := b.api.answerCallbackQuery(u.CallbackQuery.ID); err != nil {
			b.logger.WithError(err).Debug("answering callback query")
		}
		if u.CallbackQuery.Message != nil {
			b.handleLogout(u.CallbackQuery.Message.Chat.ID)
		}
	case u.InlineQuery != nil:
		b.handleInline(ctx, u.InlineQuery)
	}
}

// handleConnect sends two messages for one invocation: the deep-link as
// soon as it is extracted, and the confirmation once (and only if) the
// handshake is observed. An unconfirmed handshake is logged, not reported
// as a failure.
func (b *Bot) handleConnect(ctx context.Context, chatID int64) {
	link, err := b.flows.Connect(ctx)
	if err != nil {
		b.reply(chatID, connectFailureText(err), nil)
		return
	}

	logoutKeyboard := [][]map[string]string{{{
		"text":          "🔒 Log out",
		"callback_data": "logout",
	}}}
	b.reply(chatID, fmt.Sprintf("🔗 Open this link in Tonkeeper to connect:\n\n`%s`", link), logoutKeyboard)

	switch err := b.flows.AwaitHandshake(ctx); {
	case err == nil:
		b.reply(chatID, "✅ Connected successfully!", nil)
	case errors.Is(err, fragment.ErrHandshakeUnconfirmed):
		b.logger.Warn("handshake unconfirmed; user may still complete pairing manually")
	default:
		b.logger.WithError(err).Warn("handshake wait failed")
	}
}

func (b *Bot) handleLogout(chatID int64) {
	b.flows.Logout()
	b.reply(chatID, "🔒 You've been logged out. Use /connect to reconnect.", nil)
}

// handleInline answers a live-filter query for a login code. Invalid
// fragments answer empty with a short cache so the user can keep typing.
func (b *Bot) handleInline(ctx context.Context, q *inlineQuery) {
	result, err := b.flows.LookupCode(ctx, strings.TrimSpace(q.Query))
	if result == nil {
		if err := b.api.answerInlineQuery(q.ID, nil, 1); err != nil {
			b.logger.WithError(err).Debug("answering inline query")
		}
		return
	}

	code := result.Code
	if err != nil {
		code = "⚠️ " + err.Error()
	}

	article := inlineArticle{
		id:          strings.TrimSpace(q.Query),
		title:       fmt.Sprintf("%s → %s", result.FullNumber, code),
		messageText: fmt.Sprintf("Login code for %s: %s", result.FullNumber, code),
	}
	if err := b.api.answerInlineQuery(q.ID, []inlineArticle{article}, 5); err != nil {
		b.logger.WithError(err).Debug("answering inline query")
	}
}

func (b *Bot) reply(chatID int64, text string, keyboard [][]map[string]string) {
	if err := b.api.sendMessage(chatID, text, keyboard); err != nil {
		b.logger.WithError(err).Warn("sending message")
	}
}

// connectFailureText maps the connect workflow's typed failures to
// user-facing text.
func connectFailureText(err error) string {
	switch {
	case errors.Is(err, fragment.ErrTriggerNotFound):
		return "⚠️ Could not find the Connect TON button. The page may have changed or not loaded yet."
	case errors.Is(err, fragment.ErrPairingSurfaceNotFound):
		return "⚠️ The TON Connect dialog did not open. Please try /connect again."
	case errors.Is(err, fragment.ErrLinkExtractionFailed):
		return "⚠️ Could not extract the connection link. Please try /connect again."
	default:
		return fmt.Sprintf("⚠️ Connection failed: %v", err)
	}
}
