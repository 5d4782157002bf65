package bot

import (
	"fmt"
	"html"
	"strconv"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
)

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// esc escapes user-supplied text for HTML-mode messages.
func esc(s string) string {
	return html.EscapeString(s)
}

func menuText(u *model.User) string {
	return fmt.Sprintf(
		"🎮 <b>Red Packet Minesweeper</b>\n\n"+
			"Balance: <b>%s USDT</b>\n\n"+
			"Send a packet with a mine number and let the group grab it. "+
			"Whoever hits the mine pays the sender 1.5x the packet back.",
		money.Format(u.Balance),
	)
}

func accountText(u *model.User, sent, grabbed int64) string {
	wallet := u.WalletAddress
	if wallet == "" {
		wallet = "not bound"
	}
	return fmt.Sprintf(
		"👤 <b>My account</b>\n\n"+
			"ID: <code>%d</code>\n"+
			"Balance: <b>%s USDT</b>\n"+
			"Wallet: <code>%s</code>\n\n"+
			"Packets sent: %s USDT\n"+
			"Packets grabbed: %s USDT",
		u.TgID, money.Format(u.Balance), esc(wallet),
		money.Format(sent), money.Format(grabbed),
	)
}

func depositOrderText(order *model.Deposit, wallet string) string {
	return fmt.Sprintf(
		"💰 <b>Deposit order #%d</b>\n\n"+
			"Transfer <b>exactly</b> this amount (TRC20 USDT):\n\n"+
			"<code>%s</code> USDT\n\n"+
			"To address:\n<code>%s</code>\n\n"+
			"⚠️ The amount must match to the last digit or the transfer "+
			"cannot be credited. The order expires in 15 minutes.",
		order.ID, money.FormatExact(order.RandomAmount), esc(wallet),
	)
}

func packetText(p *model.RedPacket) string {
	head := fmt.Sprintf(
		"🧧 <b>Red packet from %s</b>\n\n"+
			"Total: <b>%s USDT</b> in %d shares\n"+
			"Remaining: %s USDT (%d left)\n",
		esc(p.SenderName), money.Format(p.TotalAmount), p.TotalCount,
		money.Format(p.RemainingAmount), p.RemainingCount,
	)
	if p.HasMine() {
		head += fmt.Sprintf(
			"\n💣 Mine number: <b>%d</b>\n"+
				"Grab a share ending in the mine digit and you pay back 1.5x!",
			p.MineNumber,
		)
	}
	return head
}
