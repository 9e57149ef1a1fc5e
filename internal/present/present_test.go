package present

import (
	"reflect"
	"testing"
	"time"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/prefs"
)

func TestPositionText(t *testing.T) {
	cases := map[int]string{
		1:  "You're next!",
		2:  "Almost your turn!",
		3:  "Almost your turn!",
		4:  "3 people ahead of you",
		12: "11 people ahead of you",
	}
	for pos, want := range cases {
		if got := PositionText(pos); got != want {
			t.Fatalf("PositionText(%d) = %q, want %q", pos, got, want)
		}
	}
}

func TestElapsedWait(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "0 min"},
		{-5 * time.Minute, "0 min"},
		{59 * time.Second, "0 min"},
		{45 * time.Minute, "45 min"},
		{90 * time.Minute, "1 hour 30 min"},
		{3 * time.Hour, "3 hours"},
		{25 * time.Hour, "1 day 1 hour"},
		{26*time.Hour + 10*time.Minute, "1 day 2 hours"},
		{48*time.Hour + 5*time.Minute, "2 days 5 min"},
	}
	for _, tc := range cases {
		if got := ElapsedWait(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("ElapsedWait(%v ago) = %q, want %q", tc.ago, got, tc.want)
		}
	}
	if got := ElapsedWait(time.Time{}, now); got != "0 min" {
		t.Fatalf("ElapsedWait(zero) = %q, want 0 min", got)
	}
}

func TestDisplayName_SelfAndOthers(t *testing.T) {
	self := api.Customer{ID: 2, FirstName: "Grace", Phone: "555-0142"}
	other := api.Customer{ID: 3, FirstName: "Alan", Phone: "555-0199"}

	if got := DisplayName(self, 2, prefs.AnonymizeInitial); got != "Grace (You)" {
		t.Fatalf("self = %q", got)
	}
	if got := DisplayName(other, 2, prefs.AnonymizeInitial); got != "A***" {
		t.Fatalf("other initial = %q", got)
	}
	if got := DisplayName(other, 2, prefs.AnonymizePhone); got != "Alan 199" {
		t.Fatalf("other phone = %q", got)
	}
	if got := DisplayName(other, 0, prefs.AnonymizeInitial); got != "A***" {
		t.Fatalf("no self = %q", got)
	}
}

func TestAnonymizedName_PhoneFallsBackToInitial(t *testing.T) {
	c := api.Customer{FirstName: "Zoë", Phone: "12"}
	if got := AnonymizedName(c, prefs.AnonymizePhone); got != "Z***" {
		t.Fatalf("AnonymizedName = %q, want Z***", got)
	}
	if got := AnonymizedName(api.Customer{}, prefs.AnonymizeInitial); got != "***" {
		t.Fatalf("AnonymizedName(empty) = %q, want ***", got)
	}
}

func TestStatusBadge(t *testing.T) {
	cases := map[api.Status]struct {
		icon string
		tone Tone
	}{
		api.StatusWaiting:   {"schedule", ToneNeutral},
		api.StatusNotified:  {"notifications", ToneAccent},
		api.StatusServed:    {"check", TonePrimary},
		api.StatusCancelled: {"info", ToneWarning},
		"WAITING":           {"schedule", ToneNeutral},
		"":                  {"info", ToneWarning},
	}
	for status, want := range cases {
		got := StatusBadge(status)
		if got.Icon != want.icon || got.Tone != want.tone {
			t.Fatalf("StatusBadge(%q) = %s/%s, want %s/%s", status, got.Icon, got.Tone, want.icon, want.tone)
		}
	}
	if got := StatusBadge(api.StatusCancelled).Label; got != "Cancelled" {
		t.Fatalf("cancelled label = %q", got)
	}
}

func TestAggregates(t *testing.T) {
	roster := []api.Customer{
		{PartySize: 2, Preference: "patio"},
		{PartySize: 1, Preference: "bar"},
		{PartySize: 4, Preference: "patio"},
	}
	if got := TotalPeople(roster); got != 7 {
		t.Fatalf("TotalPeople = %d, want 7", got)
	}
	if got := LargestParty(roster); got != 4 {
		t.Fatalf("LargestParty = %d, want 4", got)
	}
	want := []PreferenceCount{{"patio", 2}, {"bar", 1}}
	if got := PreferenceTally(roster); !reflect.DeepEqual(got, want) {
		t.Fatalf("PreferenceTally = %v, want %v", got, want)
	}
	if LargestParty(nil) != 0 || TotalPeople(nil) != 0 || len(PreferenceTally(nil)) != 0 {
		t.Fatalf("empty roster aggregates not zero")
	}
}

func TestSmallCopy(t *testing.T) {
	if got := EstimatedWait(15); got != "~15 min" {
		t.Fatalf("EstimatedWait = %q", got)
	}
	if got := PartyBadge(1); got != "" {
		t.Fatalf("PartyBadge(1) = %q, want empty", got)
	}
	if got := PartyBadge(3); got != "Party of 3" {
		t.Fatalf("PartyBadge(3) = %q", got)
	}
	if got := AssetName(api.Asset{ID: 4, Category: "Patio"}); got != "Patio #4" {
		t.Fatalf("AssetName = %q", got)
	}
	if got := AssetName(api.Asset{ID: 4, Name: " T1 "}); got != "T1" {
		t.Fatalf("AssetName = %q", got)
	}
}
