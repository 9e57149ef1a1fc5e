// Package present derives display text from waitlist data. Every function is
// pure: the same inputs always give the same output.
package present

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/prefs"
)

const nameMask = "***"

// AnonymizedName hides a roster entry's identity. In phone mode it shows the
// first name and the last three phone digits, falling back to the initial
// form when fewer than three digits are known.
func AnonymizedName(c api.Customer, mode string) string {
	if mode == prefs.AnonymizePhone {
		if digits := lastDigits(c.Phone, 3); digits != "" {
			first := strings.TrimSpace(c.FirstName)
			if first == "" {
				return nameMask + " " + digits
			}
			return first + " " + digits
		}
	}
	return initialMask(c.FirstName)
}

// DisplayName renders c for a roster. The tracked customer is shown in full.
func DisplayName(c api.Customer, selfID int64, mode string) string {
	if selfID != 0 && c.ID == selfID {
		return strings.TrimSpace(c.FirstName) + " (You)"
	}
	return AnonymizedName(c, mode)
}

func initialMask(firstName string) string {
	for _, r := range strings.TrimSpace(firstName) {
		return string(r) + nameMask
	}
	return nameMask
}

func lastDigits(phone string, n int) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) < n {
		return ""
	}
	return string(digits[len(digits)-n:])
}

// PositionText is the headline shown next to a queue position.
func PositionText(position int) string {
	switch {
	case position <= 1:
		return "You're next!"
	case position <= 3:
		return "Almost your turn!"
	default:
		return fmt.Sprintf("%d people ahead of you", position-1)
	}
}

// ElapsedWait renders now-joinedAt using the two largest non-zero units of
// days, hours and minutes. Zero or negative durations give "0 min".
func ElapsedWait(joinedAt, now time.Time) string {
	if joinedAt.IsZero() {
		return "0 min"
	}
	total := int(now.Sub(joinedAt) / time.Minute)
	if total <= 0 {
		return "0 min"
	}

	days := total / (24 * 60)
	hours := (total / 60) % 24
	minutes := total % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min", minutes))
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// EstimatedWait renders the backend's wait estimate.
func EstimatedWait(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("~%d min", minutes)
}

// PartyBadge labels groups larger than one. It is empty for a single person.
func PartyBadge(size int) string {
	if size <= 1 {
		return ""
	}
	return fmt.Sprintf("Party of %d", size)
}

// Tone is the colour family a status renders in.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneAccent  Tone = "accent"
	TonePrimary Tone = "primary"
	ToneWarning Tone = "warning"
)

// Badge is the icon and tone for a status.
type Badge struct {
	Icon  string
	Glyph string
	Label string
	Tone  Tone
}

var badges = map[api.Status]Badge{
	api.StatusWaiting:  {Icon: "schedule", Glyph: "◷", Label: "Waiting", Tone: ToneNeutral},
	api.StatusNotified: {Icon: "notifications", Glyph: "♪", Label: "Notified", Tone: ToneAccent},
	api.StatusServed:   {Icon: "check", Glyph: "✓", Label: "Served", Tone: TonePrimary},
}

// StatusBadge looks up the badge for status. Unknown statuses, cancelled
// included, get the info icon in the warning tone.
func StatusBadge(status api.Status) Badge {
	normalized := status.Normalize()
	if b, ok := badges[normalized]; ok {
		return b
	}
	label := "Unknown"
	if normalized != "" {
		label = strings.ToUpper(string(normalized[:1])) + string(normalized[1:])
	}
	return Badge{Icon: "info", Glyph: "i", Label: label, Tone: ToneWarning}
}

// PreferenceCount is one row of a preference tally.
type PreferenceCount struct {
	Preference string
	Count      int
}

// PreferenceTally counts roster entries per non-blank preference, most
// common first, ties broken alphabetically.
func PreferenceTally(roster []api.Customer) []PreferenceCount {
	counts := make(map[string]int)
	for _, c := range roster {
		if p := strings.TrimSpace(c.Preference); p != "" {
			counts[p]++
		}
	}
	out := make([]PreferenceCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, PreferenceCount{Preference: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Preference < out[j].Preference
	})
	return out
}

// TotalPeople sums party sizes over the roster.
func TotalPeople(roster []api.Customer) int {
	total := 0
	for _, c := range roster {
		total += c.PartySize
	}
	return total
}

// LargestParty returns the biggest party size on the roster, or 0 when empty.
func LargestParty(roster []api.Customer) int {
	largest := 0
	for _, c := range roster {
		if c.PartySize > largest {
			largest = c.PartySize
		}
	}
	return largest
}

// AssetName returns the asset's name, or a label built from its category and
// id when the name is blank.
func AssetName(a api.Asset) string {
	if name := strings.TrimSpace(a.Name); name != "" {
		return name
	}
	category := strings.TrimSpace(a.Category)
	if category == "" {
		category = "Asset"
	}
	return fmt.Sprintf("%s #%d", category, a.ID)
}
