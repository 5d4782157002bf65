// Package bot implements the Telegram surface: account management,
// deposit and withdrawal flows, and red packet creation and grabbing.
package bot

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// fingerprint bounds, in micro-units. Added to the requested deposit so
// each pending order has a unique payable amount.
const (
	fingerprintMin = 100
	fingerprintMax = 5000
)

// Bot wires Telegram updates to the stores.
type Bot struct {
	tb  *tele.Bot
	log *zap.Logger
	cfg *config.Config

	ledger      store.LedgerStore
	deposits    store.DepositStore
	withdrawals store.WithdrawalStore
	packets     store.PacketStore

	sessions *sessions

	rngMu sync.Mutex
	rng   *rand.Rand

	menu     *tele.ReplyMarkup
	backMenu *tele.ReplyMarkup

	btnCreatePacket tele.Btn
	btnDeposit      tele.Btn
	btnWithdraw     tele.Btn
	btnBindWallet   tele.Btn
	btnMyInfo       tele.Btn
	btnBack         tele.Btn
	btnPaid         tele.Btn
	btnGrab         tele.Btn
}

// New builds the bot and registers all handlers. It does not start
// polling; call Run.
func New(
	log *zap.Logger,
	cfg *config.Config,
	ledger store.LedgerStore,
	deposits store.DepositStore,
	withdrawals store.WithdrawalStore,
	packets store.PacketStore,
) (*Bot, error) {
	b := &Bot{
		log:         log,
		cfg:         cfg,
		ledger:      ledger,
		deposits:    deposits,
		withdrawals: withdrawals,
		packets:     packets,
		sessions:    newSessions(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	tb, err := tele.NewBot(tele.Settings{
		Token:     cfg.BotToken,
		Poller:    &tele.LongPoller{Timeout: 10 * time.Second},
		ParseMode: tele.ModeHTML,
		OnError: func(err error, c tele.Context) {
			log.Error("handler failed", zap.Error(err))
		},
	})
	if err != nil {
		return nil, err
	}
	b.tb = tb

	b.buildKeyboards()
	b.registerHandlers()
	return b, nil
}

func (b *Bot) buildKeyboards() {
	b.menu = &tele.ReplyMarkup{}
	b.btnCreatePacket = b.menu.Data("🧧 Send a packet", "create_packet")
	b.btnDeposit = b.menu.Data("💰 Deposit", "deposit")
	b.btnWithdraw = b.menu.Data("💸 Withdraw", "withdraw")
	b.btnMyInfo = b.menu.Data("👤 My account", "my_info")
	b.btnBindWallet = b.menu.Data("🔗 Bind wallet", "bind_wallet")
	b.menu.Inline(
		b.menu.Row(b.btnCreatePacket),
		b.menu.Row(b.btnDeposit, b.btnWithdraw),
		b.menu.Row(b.btnMyInfo, b.btnBindWallet),
	)

	b.backMenu = &tele.ReplyMarkup{}
	b.btnBack = b.backMenu.Data("« Back", "back_to_main")
	b.backMenu.Inline(b.backMenu.Row(b.btnBack))

	b.btnPaid = tele.Btn{Unique: "deposit_paid", Text: "I have paid"}
	b.btnGrab = tele.Btn{Unique: "grab", Text: "🧧 Grab"}
}

func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle(&b.btnCreatePacket, b.handleCreatePacket)
	b.tb.Handle(&b.btnDeposit, b.handleDeposit)
	b.tb.Handle(&b.btnWithdraw, b.handleWithdraw)
	b.tb.Handle(&b.btnMyInfo, b.handleMyInfo)
	b.tb.Handle(&b.btnBindWallet, b.handleBindWallet)
	b.tb.Handle(&b.btnBack, b.handleBack)
	b.tb.Handle(&b.btnPaid, b.handlePaid)
	b.tb.Handle(&b.btnGrab, b.handleGrab)
	b.tb.Handle(tele.OnText, b.handleText)
	b.tb.Handle(tele.OnQuery, b.handleInlineQuery)
}

// Run polls for updates until the context is cancelled. Polling errors
// are reported through OnError; Run itself only returns on shutdown.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("bot started", zap.String("username", b.tb.Me.Username))

	go func() {
		<-ctx.Done()
		b.tb.Stop()
	}()

	b.tb.Start()
	b.log.Info("bot stopped")
	return nil
}

// DepositCredited notifies the user (and the admin chat) that an order
// settled. Implements the monitor's notifier.
func (b *Bot) DepositCredited(tgID int64, amount int64, orderID uint) {
	text := "✅ Deposit received!\n\n" +
		"Credited: <b>" + money.Format(amount) + " USDT</b>\nOrder: #" +
		itoa(int64(orderID))
	if _, err := b.tb.Send(tele.ChatID(tgID), text); err != nil {
		b.log.Warn("deposit notification failed",
			zap.Int64("user", tgID), zap.Error(err))
	}

	if b.cfg.AdminChatID != 0 {
		note := "💰 Deposit settled: order #" + itoa(int64(orderID)) +
			", user " + itoa(tgID) + ", " + money.Format(amount) + " USDT"
		if _, err := b.tb.Send(tele.ChatID(b.cfg.AdminChatID), note); err != nil {
			b.log.Warn("admin notification failed", zap.Error(err))
		}
	}
}

// payable adds the random fingerprint to a requested deposit amount.
func (b *Bot) payable(amount int64) int64 {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return amount + fingerprintMin + b.rng.Int63n(fingerprintMax-fingerprintMin+1)
}
