package notifier

import (
	"fmt"
	"strings"
	"time"

	"LevelSentinel/internal/model"
)

// FormatScenarioReport formats one scenario verdict into a Telegram
// message. Only valid and valid_weak verdicts are worth a notification;
// the caller filters statuses.
func FormatScenarioReport(symbol string, res *model.ScenarioResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s | %s\n\n",
		symbol, strings.ToUpper(string(res.Status)), time.Now().UTC().Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Bias: %s | Confidence: %.1f | Mode: %s\n",
		res.Direction, res.Confidence, res.MarketMode))
	b.WriteString(fmt.Sprintf("Price: %.6g | ATR: %.6g\n", res.EvaluationPrice, res.ATR))
	b.WriteString(fmt.Sprintf("Limit: %.6g | Target: %.6g | RR: %.2f\n",
		res.StructuralLimit, res.StructuralTarget, res.RR))
	if res.PartialTarget != nil {
		b.WriteString(fmt.Sprintf("Partial target: %.6g (RR above max, dynamic flag set)\n", *res.PartialTarget))
	}
	b.WriteString(fmt.Sprintf("Trend 1H: %s | 4H: %s\n", res.Trend1h, res.Trend4h))

	if len(res.Reasons) > 0 {
		b.WriteString("\n<b>Reasons:</b>\n")
		for _, r := range res.Reasons {
			b.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}
	return b.String()
}

// FormatGateStatus formats the hygiene counters for a status reply.
func FormatGateStatus(symbol string, daily, consecutive, dailyLimit, consecutiveLimit int) string {
	return fmt.Sprintf("%s: %d/%d rejections today, %d/%d consecutive",
		symbol, daily, dailyLimit, consecutive, consecutiveLimit)
}
