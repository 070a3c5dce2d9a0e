package locator

import "testing"

func TestCandidate_Selector(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cand Candidate
		want string
	}{
		{"css passthrough", ByCSS(`button[data-state="closed"]:has-text("Join")`), `button[data-state="closed"]:has-text("Join")`},
		{"text with tag", ByText("button", "Join"), `button:has-text("Join")`},
		{"bare text", ByText("", "New meeting"), `text="New meeting"`},
		{"attr", ByAttr("button", "data-state", "closed"), `button[data-state="closed"]`},
		{"testid", ByTestID("join-btn"), `[data-testid="join-btn"]`},
		{"role with native tag", ByRole("button", "Join"), `button:has-text("Join"), [role="button"]:has-text("Join")`},
		{"role link", ByRole("link", "Profile"), `a:has-text("Profile"), [role="link"]:has-text("Profile")`},
		{"role without text", ByRole("button", ""), `button, [role="button"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cand.Selector(); got != tc.want {
				t.Errorf("Selector() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestChain_SelectorsPreserveOrder(t *testing.T) {
	t.Parallel()

	chain := NewChain("join button",
		ByCSS(`button[data-state="closed"]:has-text("Join")`),
		ByText("button", "Join"),
	)
	sels := chain.Selectors()
	if len(sels) != 2 {
		t.Fatalf("len(Selectors) = %d", len(sels))
	}
	if sels[0] != `button[data-state="closed"]:has-text("Join")` {
		t.Errorf("first selector out of order: %q", sels[0])
	}
	if sels[1] != `button:has-text("Join")` {
		t.Errorf("second selector out of order: %q", sels[1])
	}
}
