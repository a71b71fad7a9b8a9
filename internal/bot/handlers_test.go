package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valdraft/draftd/internal/league"
	"github.com/valdraft/draftd/internal/metrics"
	"github.com/valdraft/draftd/internal/models"
	"github.com/valdraft/draftd/internal/service"
	"github.com/valdraft/draftd/internal/store"
)

const adminID int64 = 42

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	state := models.NewLeagueState([]string{"Andrey", "Max"})
	state.Rosters["Andrey"] = []models.PlayerRecord{{
		PlayerID:        491,
		FullName:        "Mid Fielder",
		Position:        models.PositionMID,
		Status:          models.StatusActive,
		GwsActive:       models.GwRange(1, 38),
		TransferredInGw: 1,
	}}
	mem := store.NewMemory()
	_, err := mem.Save(context.Background(), state, store.RevisionNone)
	require.NoError(t, err)

	engine := league.NewEngine("EPL", 38,
		map[models.Position]int{models.PositionMID: 2},
		[]string{"Andrey", "Max"},
		league.WithClock(func() time.Time { return time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC) }))
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewTransferService(mem, engine, m, 0)

	return NewHandler(svc, map[string]string{
		"andrey_tg": "Andrey",
		"max_tg":    "Max",
	}, []int64{adminID})
}

func command(username string, userID int64, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: userID, UserName: username},
		Entities: []tgbotapi.MessageEntity{{
			Type:   "bot_command",
			Offset: 0,
			Length: len(cmd),
		}},
	}}
}

func TestHandleCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown command", func(t *testing.T) {
		h := newTestHandler(t)
		msg := h.HandleCommand(ctx, command("andrey_tg", 1, "/frobnicate"))
		assert.Contains(t, msg.Text, "Unknown command")
	})

	t.Run("openwindow is admin only", func(t *testing.T) {
		h := newTestHandler(t)
		msg := h.HandleCommand(ctx, command("andrey_tg", 1, "/openwindow 4"))
		assert.Contains(t, msg.Text, "Admins only")

		msg = h.HandleCommand(ctx, command("admin_tg", adminID, "/openwindow 4 Andrey,Max"))
		assert.Contains(t, msg.Text, "GW4 is open")
	})

	t.Run("transfer parses its arguments", func(t *testing.T) {
		h := newTestHandler(t)
		h.HandleCommand(ctx, command("admin_tg", adminID, "/openwindow 4 Andrey,Max"))

		msg := h.HandleCommand(ctx, command("andrey_tg", 1, "/transfer 491 83"))
		assert.Contains(t, msg.Text, "Usage:")

		msg = h.HandleCommand(ctx, command("andrey_tg", 1, "/transfer 491 83 QB 7.5 New Mid"))
		assert.Contains(t, msg.Text, "Usage:")

		msg = h.HandleCommand(ctx, command("andrey_tg", 1, "/transfer 491 83 MID 7.5 New Mid"))
		assert.Contains(t, msg.Text, "Transfer done")
		assert.Contains(t, msg.Text, "New Mid")
	})

	t.Run("transfer requires a registered manager", func(t *testing.T) {
		h := newTestHandler(t)
		h.HandleCommand(ctx, command("admin_tg", adminID, "/openwindow 4 Andrey,Max"))

		msg := h.HandleCommand(ctx, command("stranger", 7, "/transfer 491 83 MID 7.5 New Mid"))
		assert.Contains(t, msg.Text, "not registered")
	})

	t.Run("rejections come back as message text", func(t *testing.T) {
		h := newTestHandler(t)
		h.HandleCommand(ctx, command("admin_tg", adminID, "/openwindow 4 Andrey,Max"))

		msg := h.HandleCommand(ctx, command("max_tg", 2, "/transfer 491 83 MID 7.5 New Mid"))
		assert.Contains(t, msg.Text, "Transfer rejected")
	})

	t.Run("pick flow", func(t *testing.T) {
		h := newTestHandler(t)
		h.HandleCommand(ctx, command("admin_tg", adminID, "/openwindow 4 Andrey,Max"))
		h.HandleCommand(ctx, command("andrey_tg", 1, "/transfer 491 83 MID 7.5 New Mid"))

		msg := h.HandleCommand(ctx, command("max_tg", 2, "/pick nope"))
		assert.Contains(t, msg.Text, "Usage:")

		msg = h.HandleCommand(ctx, command("max_tg", 2, "/pick 491"))
		assert.Contains(t, msg.Text, "picked up")
	})

	t.Run("window report", func(t *testing.T) {
		h := newTestHandler(t)
		msg := h.HandleCommand(ctx, command("andrey_tg", 1, "/window"))
		assert.Contains(t, msg.Text, "closed")
	})
}
