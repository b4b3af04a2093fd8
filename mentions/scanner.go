// Package mentions implements the "@username" composition protocol: detecting
// an in-progress mention at the tail of a comment draft, and splicing a chosen
// username back into the text.
package mentions

import "regexp"

// A mention in progress is an "@" followed by at least one word character,
// running unbroken to the end of the text.
var trailingMention = regexp.MustCompile(`@([A-Za-z0-9_]+)$`)

// Scan inspects the tail of text for an in-progress mention. It returns the
// query (the run after "@") and true when one is live. "hello @" and
// "hello @ali doe" both return false: an empty run or a broken run is not a
// mention. Pure function, no state.
func Scan(text string) (string, bool) {
	m := trailingMention.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Insert replaces the trailing partial mention in text with "@username "
// (trailing space included, so typing continues past the mention). Text with
// no mention in progress comes back unchanged.
func Insert(text, username string) string {
	loc := trailingMention.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + "@" + username + " "
}
