package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/valdraft/draftd/internal/models"
	"github.com/valdraft/draftd/internal/service"
)

type Handler struct {
	transferService *service.TransferService
	managerUsers    map[string]string // telegram username -> manager name
	adminIDs        map[int64]bool
}

func NewHandler(transferService *service.TransferService, managerUsers map[string]string, adminIDs []int64) *Handler {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Handler{
		transferService: transferService,
		managerUsers:    managerUsers,
		adminIDs:        admins,
	}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the draft transfer bot! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n" +
			"/window - Transfer window status and turn order\n" +
			"/available [name] - Players in the transfer pool\n" +
			"/history [manager] - Transfer history\n" +
			"/team <manager> - Manager's roster\n" +
			"/whohas <player> - Find who owns a player\n" +
			"/transfer <outId> <inId> <pos> <price> <name> - Swap a player\n" +
			"/pick <playerId> - Claim a pooled player\n" +
			"/skip - Skip your transfer turn\n" +
			"Admin: /openwindow <gw> [order], /closewindow, /normalize <gw>"
	case "window":
		h.handleWindowStatus(ctx, &msg)
	case "available":
		h.handleAvailable(ctx, &msg, args)
	case "history":
		h.handleHistory(ctx, &msg, args)
	case "team":
		h.handleTeam(ctx, &msg, args)
	case "whohas":
		h.handleWhoHas(ctx, &msg, args)
	case "transfer":
		h.handleTransfer(ctx, &msg, update, args)
	case "pick":
		h.handlePick(ctx, &msg, update, args)
	case "skip":
		h.handleSkip(ctx, &msg, update)
	case "openwindow":
		h.handleOpenWindow(ctx, &msg, update, args)
	case "closewindow":
		h.handleCloseWindow(ctx, &msg, update)
	case "normalize":
		h.handleNormalize(ctx, &msg, update, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

// manager resolves the telegram sender to a league manager name.
func (h *Handler) manager(update tgbotapi.Update) string {
	if update.Message.From == nil {
		return ""
	}
	return h.managerUsers[update.Message.From.UserName]
}

func (h *Handler) isAdmin(update tgbotapi.Update) bool {
	return update.Message.From != nil && h.adminIDs[update.Message.From.ID]
}

func (h *Handler) handleWindowStatus(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.transferService.GetWindowStatusReport(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching window status: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleAvailable(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	report, err := h.transferService.GetAvailablePlayersReport(ctx, strings.TrimSpace(args))
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching available players: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleHistory(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	report, err := h.transferService.GetTransferHistoryReport(ctx, strings.TrimSpace(args))
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching transfer history: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleTeam(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a manager name. Usage: /team <manager>"
		return
	}
	report, err := h.transferService.GetRosterReport(ctx, strings.TrimSpace(args))
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching roster: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWhoHas(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	result, err := h.transferService.WhoHas(ctx, strings.TrimSpace(args))
	if err != nil {
		msg.Text = fmt.Sprintf("Error checking who has player: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleTransfer(ctx context.Context, msg *tgbotapi.MessageConfig, update tgbotapi.Update, args string) {
	manager := h.manager(update)
	if manager == "" {
		msg.Text = "You are not registered as a league manager."
		return
	}

	fields := strings.Fields(args)
	if len(fields) < 5 {
		msg.Text = "Usage: /transfer <outId> <inId> <pos> <price> <player name>"
		return
	}
	outID, err1 := strconv.Atoi(fields[0])
	inID, err2 := strconv.Atoi(fields[1])
	pos, okPos := models.ParsePosition(fields[2])
	price, err3 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || err3 != nil || !okPos {
		msg.Text = "Usage: /transfer <outId> <inId> <pos GK|DEF|MID|FWD> <price> <player name>"
		return
	}
	in := models.PlayerRecord{
		PlayerID: inID,
		FullName: strings.Join(fields[4:], " "),
		Position: pos,
		Price:    price,
	}

	if err := h.transferService.ExecuteTransfer(ctx, manager, outID, in, 0); err != nil {
		msg.Text = fmt.Sprintf("Transfer rejected: %v", err)
		return
	}
	msg.Text = fmt.Sprintf("✅ Transfer done: *%s* is in for %s.", in.FullName, manager)
}

func (h *Handler) handlePick(ctx context.Context, msg *tgbotapi.MessageConfig, update tgbotapi.Update, args string) {
	manager := h.manager(update)
	if manager == "" {
		msg.Text = "You are not registered as a league manager."
		return
	}
	playerID, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		msg.Text = "Usage: /pick <playerId>"
		return
	}
	if err := h.transferService.PickTransferPlayer(ctx, manager, playerID, 0); err != nil {
		msg.Text = fmt.Sprintf("Pickup rejected: %v", err)
		return
	}
	msg.Text = fmt.Sprintf("✅ Player %d picked up by *%s*.", playerID, manager)
}

func (h *Handler) handleSkip(ctx context.Context, msg *tgbotapi.MessageConfig, update tgbotapi.Update) {
	manager := h.manager(update)
	if manager == "" && !h.isAdmin(update) {
		msg.Text = "You are not registered as a league manager."
		return
	}
	if err := h.transferService.SkipTurn(ctx, manager, h.isAdmin(update)); err != nil {
		msg.Text = fmt.Sprintf("Cannot skip: %v", err)
		return
	}
	msg.Text = "⏭ Turn skipped."
}

func (h *Handler) handleOpenWindow(ctx context.Context, msg *tgbotapi.MessageConfig, update tgbotapi.Update, args string) {
	if !h.isAdmin(update) {
		msg.Text = "Admins only."
		return
	}
	fields := strings.Fields(args)
	if len(fields) == 0 {
		msg.Text = "Usage: /openwindow <gw> [manager,manager,...]"
		return
	}
	gw, err := strconv.Atoi(fields[0])
	if err != nil || gw < 1 {
		msg.Text = "Usage: /openwindow <gw> [manager,manager,...]"
		return
	}
	var order []string
	if len(fields) > 1 {
		order = strings.Split(strings.Join(fields[1:], " "), ",")
		for i := range order {
			order[i] = strings.TrimSpace(order[i])
		}
	}
	if err := h.transferService.OpenWindow(ctx, gw, order); err != nil {
		msg.Text = fmt.Sprintf("Cannot open window: %v", err)
		return
	}
	msg.Text = fmt.Sprintf("🚪 Transfer window for GW%d is open!", gw)
}

func (h *Handler) handleCloseWindow(ctx context.Context, msg *tgbotapi.MessageConfig, update tgbotapi.Update) {
	if !h.isAdmin(update) {
		msg.Text = "Admins only."
		return
	}
	closed, err := h.transferService.CloseWindow(ctx)
	switch {
	case err != nil:
		msg.Text = fmt.Sprintf("Cannot close window: %v", err)
	case !closed:
		msg.Text = "The transfer window is already closed."
	default:
		msg.Text = "🚪 Transfer window closed."
	}
}

func (h *Handler) handleNormalize(ctx context.Context, msg *tgbotapi.MessageConfig, update tgbotapi.Update, args string) {
	if !h.isAdmin(update) {
		msg.Text = "Admins only."
		return
	}
	gw, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || gw < 1 {
		msg.Text = "Usage: /normalize <currentGw>"
		return
	}
	report, err := h.transferService.Normalize(ctx, gw)
	if err != nil {
		msg.Text = fmt.Sprintf("Normalization failed: %v", err)
		return
	}
	msg.Text = fmt.Sprintf("🧹 Normalized %d records.", report.RecordsUpdated)
	if report.Conflicts != "" {
		msg.Text += fmt.Sprintf("\n⚠️ Attribution conflicts found: %s", report.Conflicts)
	}
}
