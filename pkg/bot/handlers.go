package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/packet"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

func displayName(u *tele.User) string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (b *Bot) handleStart(c tele.Context) error {
	sender := c.Sender()
	user, created, err := b.ledger.EnsureUser(sender.ID, displayName(sender))
	if err != nil {
		return err
	}

	if created && b.cfg.TrialBonus > 0 {
		err := b.ledger.AddBalance(sender.ID, b.cfg.TrialBonus, model.TxSystemBonus, "sign-up bonus")
		if err != nil {
			b.log.Warn("trial bonus failed", zap.Int64("user", sender.ID), zap.Error(err))
		} else {
			user.Balance += b.cfg.TrialBonus
			_ = c.Send(fmt.Sprintf(
				"🎁 Welcome! A <b>%s USDT</b> trial bonus has been credited.",
				money.Format(b.cfg.TrialBonus),
			))
		}
	}

	b.sessions.clear(sender.ID)
	return c.Send(menuText(user), b.menu)
}

func (b *Bot) handleBack(c tele.Context) error {
	b.sessions.clear(c.Sender().ID)
	user, err := b.ledger.GetUser(c.Sender().ID)
	if err != nil {
		return err
	}
	return c.Edit(menuText(user), b.menu)
}

func (b *Bot) handleMyInfo(c tele.Context) error {
	user, err := b.ledger.GetUser(c.Sender().ID)
	if err != nil {
		return err
	}
	stats, err := b.ledger.UserStats(c.Sender().ID)
	if err != nil {
		return err
	}
	return c.Edit(accountText(user, stats.TotalSent, stats.TotalGrabbed), b.backMenu)
}

func (b *Bot) handleDeposit(c tele.Context) error {
	b.sessions.set(c.Sender().ID, session{state: stateDepositAmount})
	return c.Edit(
		"💰 <b>Deposit</b>\n\nEnter a whole USDT amount (e.g. <code>10</code>). "+
			"A unique cent fingerprint is added so your transfer can be "+
			"matched automatically.",
		b.backMenu,
	)
}

func (b *Bot) handleWithdraw(c tele.Context) error {
	user, err := b.ledger.GetUser(c.Sender().ID)
	if err != nil {
		return err
	}
	if user.WalletAddress == "" {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Bind a TRC20 wallet address first.",
			ShowAlert: true,
		})
	}

	b.sessions.set(c.Sender().ID, session{state: stateWithdrawAmount})
	return c.Edit(fmt.Sprintf(
		"💸 <b>Withdraw</b>\n\nBalance: <b>%s USDT</b>\nPayout to: <code>%s</code>\n\n"+
			"Enter the amount to withdraw (minimum 1 USDT).",
		money.Format(user.Balance), esc(user.WalletAddress),
	), b.backMenu)
}

func (b *Bot) handleBindWallet(c tele.Context) error {
	b.sessions.set(c.Sender().ID, session{state: stateBindWallet})
	return c.Edit(
		"🔗 <b>Bind wallet</b>\n\nSend your TRC20 (TRON) wallet address. "+
			"Withdrawals are paid out to this address.",
		b.backMenu,
	)
}

func (b *Bot) handleCreatePacket(c tele.Context) error {
	if c.Chat().Type != tele.ChatPrivate {
		return c.Respond(&tele.CallbackResponse{
			Text: "Create packets in a private chat with me, then share them.",
		})
	}

	b.sessions.set(c.Sender().ID, session{state: statePacketAmount})
	return c.Edit(fmt.Sprintf(
		"🧧 <b>New packet</b>\n\nEnter the total amount in USDT "+
			"(minimum %s). A %d%% fee is taken from the packet.",
		money.Format(packet.MinAmount), packet.FeePercent,
	), b.backMenu)
}

func (b *Bot) handlePaid(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{
		Text:      "Transfers are credited automatically within about a minute of confirmation.",
		ShowAlert: true,
	})
}

// handleText advances whichever conversation the sender is in.
func (b *Bot) handleText(c tele.Context) error {
	if c.Chat().Type != tele.ChatPrivate {
		return nil
	}

	sess := b.sessions.get(c.Sender().ID)
	switch sess.state {
	case stateDepositAmount:
		return b.depositAmountStep(c)
	case stateWithdrawAmount:
		return b.withdrawAmountStep(c)
	case stateBindWallet:
		return b.bindWalletStep(c)
	case statePacketAmount:
		return b.packetAmountStep(c)
	case statePacketCount:
		return b.packetCountStep(c, sess)
	case statePacketMine:
		return b.packetMineStep(c, sess)
	default:
		return nil
	}
}

func (b *Bot) depositAmountStep(c tele.Context) error {
	amount, err := money.ParseWhole(c.Text())
	if err != nil {
		return c.Send("Enter a whole USDT amount, e.g. <code>10</code>.")
	}

	order, err := b.deposits.CreateOrder(c.Sender().ID, amount, b.payable(amount))
	if err != nil {
		return err
	}
	b.sessions.clear(c.Sender().ID)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(b.btnPaid.Text, b.btnPaid.Unique)),
		markup.Row(markup.Data(b.btnBack.Text, b.btnBack.Unique)),
	)
	return c.Send(depositOrderText(order, b.cfg.DepositWallet), markup)
}

func (b *Bot) withdrawAmountStep(c tele.Context) error {
	amount, err := money.Parse(c.Text())
	if err != nil || amount < money.MicroPerUSDT {
		return c.Send("Enter an amount of at least 1 USDT.")
	}

	user, err := b.ledger.GetUser(c.Sender().ID)
	if err != nil {
		return err
	}

	req, err := b.withdrawals.Request(c.Sender().ID, amount, user.WalletAddress)
	if errors.Is(err, store.ErrInsufficientBalance) {
		return c.Send("Insufficient balance for that amount.")
	}
	if err != nil {
		return err
	}
	b.sessions.clear(c.Sender().ID)

	if b.cfg.AdminChatID != 0 {
		note := fmt.Sprintf("💸 Withdrawal request #%d: user %d, %s USDT to %s",
			req.ID, c.Sender().ID, money.Format(amount), user.WalletAddress)
		if _, err := b.tb.Send(tele.ChatID(b.cfg.AdminChatID), note); err != nil {
			b.log.Warn("admin notification failed", zap.Error(err))
		}
	}

	return c.Send(fmt.Sprintf(
		"💸 Withdrawal request #%d for <b>%s USDT</b> submitted. "+
			"The amount is frozen until an operator reviews it.",
		req.ID, money.Format(amount),
	), b.backMenu)
}

func (b *Bot) bindWalletStep(c tele.Context) error {
	address := strings.TrimSpace(c.Text())
	if !strings.HasPrefix(address, "T") || len(address) != 34 {
		return c.Send("That doesn't look like a TRC20 address. It starts with <code>T</code> and is 34 characters long.")
	}

	if err := b.ledger.BindWallet(c.Sender().ID, address); err != nil {
		return err
	}
	b.sessions.clear(c.Sender().ID)
	return c.Send("🔗 Wallet bound:\n<code>"+esc(address)+"</code>", b.backMenu)
}

func (b *Bot) packetAmountStep(c tele.Context) error {
	amount, err := money.Parse(c.Text())
	if err != nil || amount < packet.MinAmount {
		return c.Send(fmt.Sprintf(
			"Enter an amount of at least %s USDT.", money.Format(packet.MinAmount),
		))
	}

	b.sessions.set(c.Sender().ID, session{state: statePacketCount, packetAmount: amount})
	return c.Send("How many shares? (at least 2)")
}

func (b *Bot) packetCountStep(c tele.Context, sess session) error {
	count, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || count < packet.MinCount {
		return c.Send("Enter a share count of at least 2.")
	}
	if int64(count) > packet.Net(sess.packetAmount) {
		return c.Send("Too many shares for that amount. Pick a smaller count.")
	}

	sess.state = statePacketMine
	sess.packetCount = count
	b.sessions.set(c.Sender().ID, sess)
	return c.Send(
		"Pick a mine number <code>0</code>-<code>9</code>, or <code>-1</code> for a packet without a mine.\n\n" +
			"Whoever grabs a share whose cent digit matches the mine pays you 1.5x the packet total.",
	)
}

func (b *Bot) packetMineStep(c tele.Context, sess session) error {
	mine, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || mine < model.NoMine || mine > 9 {
		return c.Send("Enter a digit <code>0</code>-<code>9</code>, or <code>-1</code> for none.")
	}

	p, err := b.packets.Create(c.Sender().ID, displayName(c.Sender()), sess.packetAmount, sess.packetCount, mine)
	if errors.Is(err, store.ErrInsufficientBalance) {
		return c.Send("Insufficient balance. Deposit first, then try again.")
	}
	if err != nil {
		return err
	}
	b.sessions.clear(c.Sender().ID)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Query("🚀 Share to a group", p.ID)),
		markup.Row(markup.Data(b.btnBack.Text, b.btnBack.Unique)),
	)
	return c.Send(packetText(p)+"\n\nPacket ID: <code>"+p.ID+"</code>", markup)
}
