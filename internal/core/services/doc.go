// Package services implements the driving ports on top of the driven ones.
//
// DatasetService owns the current snapshot. SearchService and Debouncer read
// it; the ranking functions (RankSearch, FindAnchor, RankNearest) are pure
// over a snapshot passed in. SettingsService and Refresher cover
// configuration and periodic reloads.
package services
