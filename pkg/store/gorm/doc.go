// Package gorm implements the store interfaces on PostgreSQL via GORM.
//
// All multi-row settlements (grabs, transfers, freezes) run inside a
// single transaction with SELECT ... FOR UPDATE row locks on the rows
// whose balances change.
package gorm
