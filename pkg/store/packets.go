package store

import (
	"time"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
)

// GrabResult describes the outcome of a single grab.
type GrabResult struct {
	Packet   *model.RedPacket
	Share    int64
	Digit    int
	MineHit  bool
	Penalty  int64
	Finished bool
}

// PacketStore owns red packets and their settlement.
type PacketStore interface {
	// Create debits the sender for the full amount and opens an active
	// packet carrying the post-fee total.
	Create(senderID int64, senderName string, amount int64, count, mine int) (*model.RedPacket, error)

	// Get fetches a packet. Returns ErrPacketNotFound if missing.
	Get(id string) (*model.RedPacket, error)

	// Grab claims one share for the user under a packet row lock:
	// splits a share, credits the claimer, settles any mine penalty and
	// finishes the packet when the last share goes.
	Grab(packetID string, tgID int64) (*GrabResult, error)

	// RefundExpired returns the remaining amount of packets still
	// active at the cutoff to their senders and marks them refunded.
	RefundExpired(cutoff time.Time) ([]model.RedPacket, error)
}
