package notifier

import (
	"fmt"
	"strings"
	"time"

	"CrashSentinel/internal/model"
)

// FormatCrashAlert formats a crash-deployment notification. used must be the
// deployed count after the tranche flip so the message reflects the new state.
func FormatCrashAlert(snap *model.MarketSnapshot, trancheIdx int, amount int64, alloc model.Allocation, used, total int, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚨 <b>MARKET DROP ≥3%%</b> — %s\n", fmtTime(snap.FetchedAt, loc)))
	if snap.PercentMove != nil {
		b.WriteString(fmt.Sprintf("Nifty %.2f%% (%.2f)\n", *snap.PercentMove, snap.Price))
	}
	b.WriteString(fmt.Sprintf("Action: Crash #%d → Deploy ₹%d\n", trancheIdx+1, amount))
	b.WriteString("Allocations (normal or VIX-adjusted):\n")
	for _, e := range alloc {
		b.WriteString(fmt.Sprintf("• %s: ₹%d\n", e.Fund, e.Amount))
	}
	b.WriteString("Tranches (3) — split roughly equally at 10:15 / 12:30 / 14:50 (adjust if close).\n")
	b.WriteString(fmt.Sprintf("Crashes used: %d/%d\n", used, total))
	return b.String()
}

// FormatEODSummary formats the end-of-day summary notification.
func FormatEODSummary(snap *model.MarketSnapshot, used, total int, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📋 <b>EOD Market Summary</b> — %s\n", fmtTime(snap.FetchedAt, loc)))
	b.WriteString(fmt.Sprintf("1) Market headline: Nifty %s%% (%.2f)\n", fmtOpt(snap.PercentMove), snap.Price))
	b.WriteString("2) Top sectors ↑: (fetch externally) ; Top sectors ↓: (fetch externally)\n")
	b.WriteString(fmt.Sprintf("3) Notable movers: %s\n", fmtMovers(snap.TopMovers)))
	b.WriteString("4) Catalysts: (summarize Reuters / ET / Mint / Bloomberg externally)\n")
	b.WriteString(fmt.Sprintf("5) Macro / flows: FII %s | DII %s | VIX %s\n",
		fmtOpt(snap.FlowIn), fmtOpt(snap.FlowOut), fmtOpt(snap.VIX)))
	b.WriteString("6) Events ahead: (RBI / US jobs / results - fill externally)\n")
	b.WriteString(fmt.Sprintf("7) Personal plan status: SIP ₹500 ×4 = ₹2000 | Crashes used: %d/%d\n", used, total))
	b.WriteString("8) Suggested next step: No action unless specified.\n")
	return b.String()
}

// FormatFetchError formats a data-fetch failure notification.
func FormatFetchError(err error) string {
	return fmt.Sprintf("❌ Market fetch error: %v", err)
}

// FormatStatus formats the tranche ledger for the /status command.
func FormatStatus(state model.CrashState, sequence []int64) string {
	var b strings.Builder
	b.WriteString("📦 <b>Crash tranche status</b>\n\n")
	for i, deployed := range state.Deployed {
		mark := "•"
		if deployed {
			mark = "✅"
		}
		var amount int64
		if i < len(sequence) {
			amount = sequence[i]
		}
		b.WriteString(fmt.Sprintf("%s Crash #%d: ₹%d\n", mark, i+1, amount))
	}
	b.WriteString(fmt.Sprintf("\nCrashes used: %d/%d\n", state.DeployedCount(), len(state.Deployed)))
	return b.String()
}

func fmtTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04 MST")
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtMovers(movers []string) string {
	if len(movers) == 0 {
		return "N/A"
	}
	if len(movers) > 3 {
		movers = movers[:3]
	}
	return strings.Join(movers, ", ")
}
