// Package telegram provides Telegram Bot API integration for the PortWatch bot.
//
// The package sends Markdown formatted maneuver alerts, long-polls for incoming
// commands and renders the replies to them. It talks to the Bot API with plain
// HTTP requests.
//
// Authentication requires a bot token (from @BotFather); alerts go to one chat ID.
package telegram
