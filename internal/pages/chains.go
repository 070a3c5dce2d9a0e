package pages

import (
	"fmt"

	"github.com/quorumhq/quorum-e2e/internal/locator"
)

// Candidate tables for every target the flows touch. Order is preference:
// stable IDs first, semantic fallbacks last. When a UI build renames an ID,
// add the new selector in front instead of editing tests.
var (
	loginEmail = locator.NewChain("login email field",
		locator.ByCSS("#login-email"),
		locator.ByAttr("input", "name", "email"),
		locator.ByAttr("input", "type", "email"),
	)
	loginPassword = locator.NewChain("login password field",
		locator.ByCSS("#login-password"),
		locator.ByAttr("input", "name", "password"),
		locator.ByAttr("input", "type", "password"),
	)
	loginSubmit = locator.NewChain("sign in button",
		locator.ByCSS("#login-submit"),
		locator.ByRole("button", "Sign in"),
		locator.ByCSS(`button[type="submit"]`),
	)
	loginError = locator.NewChain("login error banner",
		locator.ByCSS(`.form-error[role="alert"]`),
		locator.ByCSS(`[role="alert"]`),
	)
	ssoLogin = locator.NewChain("continue with SSO",
		locator.ByCSS("#sso-login"),
		locator.ByRole("link", "Continue with SSO"),
		locator.ByText("a", "SSO"),
	)

	welcomeHeading = locator.NewChain("dashboard welcome heading",
		locator.ByText("h1", "Welcome back"),
		locator.ByCSS("h1"),
	)
	newMeetingButton = locator.NewChain("new meeting button",
		locator.ByCSS("#new-meeting"),
		locator.ByRole("link", "New meeting"),
	)
	meetingListReady = locator.NewChain("hydrated meeting list",
		locator.ByCSS(`#meeting-list[data-state="ready"]`),
	)
	meetingListEmpty = locator.NewChain("empty meeting list hint",
		locator.ByCSS("#meeting-list .empty-state"),
	)

	meetingTitleField = locator.NewChain("meeting title field",
		locator.ByCSS("#meeting-title"),
		locator.ByAttr("input", "name", "title"),
	)
	createMeetingButton = locator.NewChain("create meeting button",
		locator.ByCSS("#create-meeting"),
		locator.ByRole("button", "Create meeting"),
	)
	// The .join-cta class shipped in older builds; current builds carry
	// data-state on the button. Both stay ahead of the generic role match.
	joinMeetingButton = locator.NewChain("join meeting button",
		locator.ByCSS(`button.join-cta:has-text("Join")`),
		locator.ByCSS(`button[data-state="closed"]:has-text("Join")`),
		locator.ByCSS("#join-meeting"),
		locator.ByRole("button", "Join"),
	)
	meetingHeading = locator.NewChain("meeting heading",
		locator.ByCSS("h1.meeting-title"),
		locator.ByCSS("h1"),
	)
	meetingRoomBanner = locator.NewChain("in-meeting banner",
		locator.ByCSS("#meeting-room .room-banner"),
		locator.ByText("p", "You are in the meeting"),
	)
	leaveMeetingButton = locator.NewChain("leave meeting button",
		locator.ByCSS("#leave-meeting"),
		locator.ByRole("button", "Leave"),
	)

	notificationsHeading = locator.NewChain("notifications heading",
		locator.ByText("h1", "Notifications"),
	)
	markAllReadButton = locator.NewChain("mark all read button",
		locator.ByCSS("#mark-all-read"),
		locator.ByRole("button", "Mark all read"),
	)
	caughtUpHint = locator.NewChain("empty inbox hint",
		locator.ByCSS(".empty-state"),
		locator.ByText("p", "caught up"),
	)

	displayNameField = locator.NewChain("display name field",
		locator.ByCSS("#display-name"),
		locator.ByAttr("input", "name", "display_name"),
	)
	saveProfileButton = locator.NewChain("save profile button",
		locator.ByCSS("#save-profile"),
		locator.ByRole("button", "Save changes"),
	)
	profileSavedFlash = locator.NewChain("profile saved flash",
		locator.ByCSS(`.server-flash[role="status"]`),
		locator.ByText("div", "Profile saved"),
	)
	consentBanner = locator.NewChain("cookie consent banner",
		locator.ByCSS("#consent-banner"),
	)
	acceptCookiesButton = locator.NewChain("accept cookies button",
		locator.ByCSS("#accept-cookies"),
		locator.ByRole("button", "Accept"),
	)
)

// filterTab builds the chain for one notifications filter tab.
func filterTab(filter, label string) locator.Chain {
	return locator.NewChain(fmt.Sprintf("%s filter tab", filter),
		locator.ByCSS(fmt.Sprintf(`[role="tab"][data-filter=%q]`, filter)),
		locator.ByRole("tab", label),
	)
}

// meetingRowLink builds the chain for a meeting's open-in-new-tab link.
func meetingRowLink(title string) locator.Chain {
	return locator.NewChain(fmt.Sprintf("open link for %q", title),
		locator.ByCSS(fmt.Sprintf(`li.meeting-row:has-text(%q) a.join-link`, title)),
	)
}
