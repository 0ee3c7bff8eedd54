// Package common provides shared types and utilities for UI features.
package common

// PageMeta holds what the layout needs around a page body.
type PageMeta struct {
	Title       string
	CurrentPath string
	IsDev       bool
	// UpdatesURL, when set, is opened as a long-lived SSE stream on load.
	UpdatesURL string
}

// NavItem is one entry in the header navigation.
type NavItem struct {
	Label string
	Path  string
}

// Nav returns the header navigation in display order.
func Nav() []NavItem {
	return []NavItem{
		{Label: "Oversikt", Path: "/"},
		{Label: "Dokumenter", Path: "/documents"},
		{Label: "Prosjektvurdering", Path: "/assessment"},
		{Label: "Regelverk", Path: "/regulations"},
		{Label: "Verifisering", Path: "/verification"},
		{Label: "SQL", Path: "/query"},
	}
}

// CategoryGroup is a category with the documents filed under it.
type CategoryGroup struct {
	Name        string
	Icon        string
	Color       string
	Description string
	Documents   []DocumentItem
}

// DocumentItem is a document row in listings.
type DocumentItem struct {
	ID       int64
	Title    string
	Category string
	Status   string
	Priority int
	Date     string
	URL      string
}
