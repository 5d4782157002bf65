package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedPacketClaimed(t *testing.T) {
	p := &RedPacket{ClaimedUsers: "[]"}

	assert.False(t, p.ClaimedBy(42))

	p.AddClaimed(42)
	assert.True(t, p.ClaimedBy(42))
	assert.False(t, p.ClaimedBy(43))
	assert.Equal(t, "[42]", p.ClaimedUsers)

	p.AddClaimed(43)
	assert.True(t, p.ClaimedBy(43))
	assert.Equal(t, "[42,43]", p.ClaimedUsers)
}

func TestRedPacketClaimedMalformed(t *testing.T) {
	// A corrupt claimed list must not block grabbing.
	p := &RedPacket{ClaimedUsers: "not json"}
	assert.False(t, p.ClaimedBy(1))

	p.AddClaimed(1)
	assert.Equal(t, "[1]", p.ClaimedUsers)
}

func TestRedPacketHasMine(t *testing.T) {
	assert.False(t, (&RedPacket{MineNumber: NoMine}).HasMine())
	assert.True(t, (&RedPacket{MineNumber: 0}).HasMine())
	assert.True(t, (&RedPacket{MineNumber: 9}).HasMine())
}
