// Package model defines the GORM models for the red-packet bot.
//
// All monetary columns hold micro-unit USDT values (see pkg/money).
//
// # Core Models
//
//   - User: Telegram users with a micro-unit balance and optional
//     TRC20 payout wallet
//   - Deposit: pending/completed deposit orders matched against
//     on-chain transfers by their randomized payable amount
//   - Withdrawal: payout requests; funds are frozen at request time
//   - RedPacket: a shareable packet of funds, optionally carrying a
//     mine number for the minesweeper game
//   - Transaction: append-only ledger of every balance change
package model
