package cache

import "strings"

// KeyPrefix namespaces every key this service writes to a shared Redis.
const KeyPrefix = "aiinterviewer"

const keySep = ":"

// Key joins parts under KeyPrefix, e.g. Key("interview", "candidate", id).
// Empty parts are skipped so an unset suffix never leaves a trailing separator.
func Key(parts ...string) string {
	b := strings.Builder{}
	b.WriteString(KeyPrefix)
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(keySep)
		b.WriteString(p)
	}
	return b.String()
}

// InterviewCandidateViewKey holds the candidate-safe JSON view of one interview.
func InterviewCandidateViewKey(interviewID string) string {
	return Key("interview", "candidate", interviewID)
}

// DeviceLockKey serializes credit-gated work per device.
func DeviceLockKey(deviceID string) string {
	return Key("credits", "lock", deviceID)
}
