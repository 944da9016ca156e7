// Package dateutil converts between the canonical storage date format and the
// display formats used by the UI. Dates are always persisted as YYYY-MM-DD;
// the dotted and dashed day-first forms exist only at the boundary.
package dateutil

import (
	"fmt"
	"time"
)

const (
	// CanonicalLayout is the only format ever written to the store.
	CanonicalLayout = "2006-01-02"

	displayDotLayout  = "02.01.2006"
	displayDashLayout = "02-01-2006"
)

// Canonical normalizes s into YYYY-MM-DD. It accepts the canonical form
// itself and both display forms (DD.MM.YYYY, DD-MM-YYYY). An empty string
// yields today's date.
func Canonical(s string) (string, error) {
	if s == "" {
		return time.Now().Format(CanonicalLayout), nil
	}
	for _, layout := range []string{CanonicalLayout, displayDotLayout, displayDashLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q (want YYYY-MM-DD, DD.MM.YYYY or DD-MM-YYYY)", s)
}

// DisplayDot renders a canonical date as DD.MM.YYYY.
func DisplayDot(canonical string) (string, error) {
	t, err := time.Parse(CanonicalLayout, canonical)
	if err != nil {
		return "", fmt.Errorf("not a canonical date %q: %w", canonical, err)
	}
	return t.Format(displayDotLayout), nil
}

// DisplayDash renders a canonical date as DD-MM-YYYY.
func DisplayDash(canonical string) (string, error) {
	t, err := time.Parse(CanonicalLayout, canonical)
	if err != nil {
		return "", fmt.Errorf("not a canonical date %q: %w", canonical, err)
	}
	return t.Format(displayDashLayout), nil
}

// Today returns the current date in canonical form.
func Today() string {
	return time.Now().Format(CanonicalLayout)
}
