package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mbbank-monitor/internal/model"
	"mbbank-monitor/internal/notify"
	"mbbank-monitor/internal/weather"
)

// Fixed lifecycle messages, pre-escaped for MarkdownV2.
const (
	morningMessage   = "🌞 *Good morning, have a great day\\!* 🌞"
	goodnightMessage = "😴 *Time for bed, see you tomorrow morning\\!* 💤"
)

// FormatTransaction formats a new-transaction alert
func FormatTransaction(tx *model.Transaction, account string) string {
	return fmt.Sprintf(
		"💰 *NEW TRANSACTION* 💰\n\n"+
			"💸 Amount in: *%s*\n\n"+
			"🏦 Account: %s\n\n"+
			"📝 Description: %s\n\n"+
			"🔢 Reference: %s\n\n"+
			"⏱ Transaction time: *%s*",
		notify.EscapeMarkdown(FormatCurrency(tx.CreditAmount)),
		notify.EscapeMarkdown(account),
		notify.EscapeMarkdown(tx.Description),
		notify.EscapeMarkdown(tx.RefNo),
		notify.EscapeMarkdown(tx.TransactionDate),
	)
}

// FormatDailySummary formats the end-of-day summary message
func FormatDailySummary(summary model.DailySummary) string {
	date := notify.EscapeMarkdown(summary.Date)

	if summary.TransactionCount == 0 {
		return fmt.Sprintf(
			"📊 *DAILY TRANSACTION SUMMARY* 📊\n\n"+
				"📅 Date: *%s*\n\n"+
				"💬 No transactions today\\.\n\n",
			date,
		)
	}

	return fmt.Sprintf(
		"📊 *DAILY TRANSACTION SUMMARY* 📊\n\n"+
			"📅 Date: *%s*\n\n"+
			"🧮 Transactions: *%d*\n\n"+
			"💵 Total in: *%s*\n\n",
		date,
		summary.TransactionCount,
		notify.EscapeMarkdown(formatVND(summary.TotalCredit)),
	)
}

// FormatWeather formats a weather report, with the monitor's uptime appended
func FormatWeather(w *model.Weather, uptime time.Duration) string {
	emoji := weather.ConditionEmoji(w.Current.Condition.Text)

	return fmt.Sprintf(
		"🛰️ *WEATHER UPDATE* 🛰️\n\n"+
			"📍 Location: *%s, %s*\n\n"+
			"%s Conditions: *%s*\n\n"+
			"🌡 Temperature: *%s°C*\n\n"+
			"🌡 Feels like: *%s°C*\n\n"+
			"🕒 Updated at: %s\n\n"+
			"⏱️ Uptime: *%s*",
		notify.EscapeMarkdown(w.Location.Name),
		notify.EscapeMarkdown(w.Location.Country),
		emoji,
		notify.EscapeMarkdown(w.Current.Condition.Text),
		notify.EscapeMarkdown(trimFloat(w.Current.TempC)),
		notify.EscapeMarkdown(trimFloat(w.Current.FeelslikeC)),
		notify.EscapeMarkdown(w.Current.LastUpdated),
		notify.EscapeMarkdown(FormatUptime(uptime)),
	)
}

// FormatStartup formats the startup notification
func FormatStartup(t time.Time) string {
	return notify.EscapeMarkdown(fmt.Sprintf("🚀 MB Bank transaction monitor started at %s", t.Format(time.DateTime)))
}

// FormatShutdown formats the shutdown notification
func FormatShutdown(t time.Time) string {
	return notify.EscapeMarkdown(fmt.Sprintf("🛑 MB Bank transaction monitor stopped at %s", t.Format(time.DateTime)))
}

// FormatFatalError formats the best-effort error notification sent before the
// loop terminates
func FormatFatalError(err error, t time.Time) string {
	return fmt.Sprintf("❌ *ERROR* ❌\n\n%s\n\nMonitoring stopped at %s",
		notify.EscapeMarkdown(err.Error()),
		notify.EscapeMarkdown(t.Format(time.DateTime)),
	)
}

// FormatCurrency renders an amount as VND. Missing amounts count as zero;
// other non-numeric amounts pass through verbatim.
func FormatCurrency(amount model.Amount) string {
	if amount == "" || amount == model.AmountMissing {
		return formatVND(0)
	}
	v, err := strconv.ParseInt(string(amount), 10, 64)
	if err != nil {
		return fmt.Sprintf("%s VND", amount)
	}
	return formatVND(v)
}

// formatVND renders a numeric amount with thousands separators
func formatVND(v int64) string {
	return fmt.Sprintf("%s VND", groupDigits(v))
}

func groupDigits(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatUptime renders a duration as "2d 3h 4m 5s", dropping leading zero
// units
func FormatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	s = strings.TrimSuffix(s, ".0")
	return s
}
