package bot

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// handleInlineQuery answers @bot <packet-id> with a shareable packet
// card carrying the grab button.
func (b *Bot) handleInlineQuery(c tele.Context) error {
	id := strings.TrimSpace(c.Query().Text)
	if id == "" {
		return c.Answer(&tele.QueryResponse{Results: tele.Results{}, CacheTime: 1})
	}

	p, err := b.packets.Get(id)
	if err != nil || p.Status != model.PacketActive {
		return c.Answer(&tele.QueryResponse{Results: tele.Results{}, CacheTime: 1})
	}

	result := &tele.ArticleResult{
		Title: fmt.Sprintf("🧧 Red packet: %s USDT", money.Format(p.TotalAmount)),
		Description: fmt.Sprintf("%d shares from %s. Tap to share.",
			p.TotalCount, p.SenderName),
	}
	result.SetResultID(p.ID)
	result.SetContent(&tele.InputTextMessageContent{
		Text:      packetText(p),
		ParseMode: tele.ModeHTML,
	})
	result.ReplyMarkup = b.grabMarkup(p.ID)

	return c.Answer(&tele.QueryResponse{
		Results:   tele.Results{result},
		CacheTime: 1,
	})
}

func (b *Bot) grabMarkup(packetID string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data(b.btnGrab.Text, b.btnGrab.Unique, packetID)))
	return markup
}

func (b *Bot) handleGrab(c tele.Context) error {
	id := strings.TrimSpace(c.Data())
	sender := c.Sender()

	// Group members may grab without ever having talked to the bot.
	if _, _, err := b.ledger.EnsureUser(sender.ID, displayName(sender)); err != nil {
		return err
	}

	res, err := b.packets.Grab(id, sender.ID)
	if alert := grabErrorAlert(err); alert != "" {
		return c.Respond(&tele.CallbackResponse{Text: alert, ShowAlert: true})
	}
	if err != nil {
		return err
	}

	b.log.Info("share grabbed",
		zap.String("packet", id),
		zap.Int64("user", sender.ID),
		zap.String("share", money.Format(res.Share)),
		zap.Bool("mine_hit", res.MineHit),
	)

	alert := fmt.Sprintf("🧧 You grabbed %s USDT! (digit %d)",
		money.Format(res.Share), res.Digit)
	if res.MineHit {
		alert = fmt.Sprintf(
			"💥 BOOM! You grabbed %s USDT but hit mine %d and pay %s USDT back to the sender.",
			money.Format(res.Share), res.Packet.MineNumber, money.Format(res.Penalty),
		)
		b.notifyMineHit(res, sender)
	}

	if err := c.Respond(&tele.CallbackResponse{Text: alert, ShowAlert: true}); err != nil {
		return err
	}

	// Refresh the shared card; once finished the button goes away.
	text := packetText(res.Packet)
	if res.Finished {
		text += "\n\n✅ Fully claimed."
		return c.Edit(text)
	}
	return c.Edit(text, b.grabMarkup(id))
}

func grabErrorAlert(err error) string {
	switch {
	case errors.Is(err, store.ErrPacketNotFound),
		errors.Is(err, store.ErrPacketExhausted):
		return "This packet is gone."
	case errors.Is(err, store.ErrAlreadyClaimed):
		return "You already grabbed a share of this packet."
	case errors.Is(err, store.ErrBalanceTooLow):
		return "Grabbing a mine packet needs a balance of at least 5 USDT."
	default:
		return ""
	}
}

func (b *Bot) notifyMineHit(res *store.GrabResult, claimer *tele.User) {
	text := fmt.Sprintf(
		"💥 <b>%s</b> hit the mine in your packet <code>%s</code> and paid you %s USDT.",
		esc(displayName(claimer)), res.Packet.ID, money.Format(res.Penalty),
	)
	if _, err := b.tb.Send(tele.ChatID(res.Packet.SenderID), text); err != nil {
		b.log.Warn("mine notification failed",
			zap.Int64("sender", res.Packet.SenderID), zap.Error(err))
	}
}
