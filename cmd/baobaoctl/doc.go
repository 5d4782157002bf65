// Package main provides the control CLI for the red packet Telegram bot.
//
// The system consists of three long-running services sharing one
// PostgreSQL database:
//
//   - bot: the Telegram surface (accounts, deposits, withdrawals, packets)
//   - monitor: background sweeps (on-chain deposit matching, order expiry,
//     packet refunds)
//   - server: the admin HTTP API
//
// # Quick Start
//
//	# Run database migrations
//	baobaoctl db migrate
//
//	# Run everything under one supervisor
//	baobaoctl run
//
// Individual services can also be run on their own:
//
//	baobaoctl server
//	baobaoctl bot
//	baobaoctl monitor
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - BOT_TOKEN: Telegram bot API token
//   - ADMIN_ID: Telegram chat ID for operational notifications
//   - DEPOSIT_WALLET_ADDRESS: TRC20 address deposits are sent to
//   - TRON_API_KEY: optional TronGrid API key
//   - ADMIN_USER / ADMIN_PASSWORD / JWT_SECRET: admin API credentials
//   - PORT / BIND_ADDRESS: admin server listen address (default 0.0.0.0:8080)
//   - BAOBAO_LOG_LEVEL: log level (debug enables SQL and debug output)
//   - BAOBAO_CONFIG_PATH: directory holding baobao.yml
package main
