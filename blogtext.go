// Package blogtext extracts the human-authored body text of a web page,
// primarily posts on a Korean blogging platform, and strips the noise around
// it (UI chrome, ad disclosures, hashtags).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, slog/).
package blogtext
