// Package hub lists the back-office modules shown on the landing page.
package hub

import "time"

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Module struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
	Active      bool   `json:"active"`
	Links       []Link `json:"links,omitempty"`
}

var modules = []Module{
	{ID: "expo", Title: "Expo & Events", Description: "Plan, manage and track trade shows, fairs and business events."},
	{ID: "leads", Title: "Leads", Description: "Search and discover leads via campaigns or Google Maps."},
	{ID: "accounts-crm", Title: "Accounts", Description: "Manage client relationships, contacts and interactions.", Href: "/accounts-crm"},
	{ID: "opportunities", Title: "Opportunities", Description: "Track sales opportunities, pipelines and forecasts."},
	{ID: "projects", Title: "Projects", Description: "Project management, tasks, timelines and collaboration."},
	{
		ID:          "finance",
		Title:       "Finance",
		Description: "Financial overview, transactions, payroll and runway tracking.",
		Href:        "/finance/dashboard",
		Active:      true,
		Links: []Link{
			{Label: "Dashboard", Href: "/finance/dashboard"},
			{Label: "Transactions", Href: "/finance/transactions"},
			{Label: "Payroll", Href: "/finance/payroll"},
			{Label: "Exchange Rates", Href: "/finance/exchange-rates"},
		},
	},
	{ID: "documents", Title: "Documents", Description: "Centralized document management, templates and e-signatures."},
	{ID: "reports", Title: "Reports & Analytics", Description: "Business intelligence, custom dashboards and KPI tracking."},
	{ID: "communications", Title: "Communications", Description: "Internal messaging, announcements and team collaboration."},
	{
		ID:          "organization",
		Title:       "Organization",
		Description: "Company structure, departments, roles and org chart.",
		Href:        "/organization",
		Active:      true,
		Links: []Link{
			{Label: "Companies", Href: "/organization/companies"},
			{Label: "Departments", Href: "/organization/departments"},
			{Label: "Roles", Href: "/organization/roles"},
			{Label: "Org Chart", Href: "/organization/org-chart"},
			{Label: "People", Href: "/organization/people"},
		},
	},
	{ID: "settings", Title: "Settings", Description: "General configuration, integrations and user preferences."},
}

// Modules returns a copy of the catalog, active modules first, keeping the
// catalog order otherwise.
func Modules() []Module {
	out := make([]Module, 0, len(modules))

	for _, active := range []bool{true, false} {
		for _, m := range modules {
			if m.Active == active {
				out = append(out, m)
			}
		}
	}

	return out
}

// Find returns the module with id.
func Find(id string) (Module, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}

	return Module{}, false
}

// Greeting picks the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
