// Package action performs single user-intent interactions on resolved
// elements, with a one-shot force fallback for occluded targets. Retrying a
// whole resolve+act unit belongs to the retry package, never here.
package action

import (
	"context"

	"github.com/quorumhq/quorum-e2e/internal/errs"
	"github.com/quorumhq/quorum-e2e/internal/locator"
	"github.com/quorumhq/quorum-e2e/internal/obs"
)

// Click clicks el. If the natural click fails (typically because an overlay
// intercepts the pointer event), exactly one force click is attempted.
func Click(ctx context.Context, el locator.Element) error {
	return withBypass(ctx, "click", func(force bool) error {
		return el.Click(force)
	})
}

// Fill replaces the value of el with text, bypassing occlusion once.
func Fill(ctx context.Context, el locator.Element, text string) error {
	return withBypass(ctx, "fill", func(force bool) error {
		return el.Fill(text, force)
	})
}

// Hover moves the pointer over el, bypassing occlusion once.
func Hover(ctx context.Context, el locator.Element) error {
	return withBypass(ctx, "hover", func(force bool) error {
		return el.Hover(force)
	})
}

// Check checks a checkbox element, bypassing occlusion once.
func Check(ctx context.Context, el locator.Element) error {
	return withBypass(ctx, "check", func(force bool) error {
		return el.Check(force)
	})
}

func withBypass(ctx context.Context, name string, do func(force bool) error) error {
	err := do(false)
	if err == nil {
		return nil
	}
	obs.From(ctx).Warn("interaction blocked, retrying with force",
		"interaction", name, "error", err)

	if ferr := do(true); ferr != nil {
		return errs.Wrap(errs.InteractionBlocked,
			name+" failed after force retry", ferr)
	}
	return nil
}
