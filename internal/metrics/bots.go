package metrics

import "strings"

// BotPatterns are matched case-insensitively against the User-Agent header, in order.
var BotPatterns = []string{"Googlebot", "bingbot", "Baiduspider", "YandexBot", "DuckDuckBot", "Slurp", "facebot"}

// DetectBot returns the first pattern contained in userAgent.
func DetectBot(userAgent string) (string, bool) {
	if userAgent == "" {
		return "", false
	}
	ua := strings.ToLower(userAgent)
	for _, bot := range BotPatterns {
		if strings.Contains(ua, strings.ToLower(bot)) {
			return bot, true
		}
	}
	return "", false
}
