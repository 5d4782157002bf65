// Package store defines the storage interfaces shared by the bot, the
// monitor and the admin server. The GORM implementations live in the
// gorm subpackage; tests substitute fakes.
package store
