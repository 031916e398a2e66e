package dataset

import "github.com/sadopc/cockpit/internal/portfolio"

// BySite returns the rows tagged with site, or a copy of every row for the
// all-sites view.
func BySite[T any](rows []T, site portfolio.Site, siteOf func(T) portfolio.Site) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if site == portfolio.SiteAll || site == "" || siteOf(r) == site {
			out = append(out, r)
		}
	}
	return out
}

func (a Asset) SiteOf() portfolio.Site                 { return a.Site }
func (v ValidationItem) SiteOf() portfolio.Site        { return v.Site }
func (m TeamMember) SiteOf() portfolio.Site            { return m.Site }
func (p MaintenancePrediction) SiteOf() portfolio.Site { return p.Site }

func (s *Snapshot) AssetsFor(site portfolio.Site) []Asset {
	return BySite(s.Assets, site, Asset.SiteOf)
}

func (s *Snapshot) ValidationFor(site portfolio.Site) []ValidationItem {
	return BySite(s.Validation, site, ValidationItem.SiteOf)
}

func (s *Snapshot) TeamFor(site portfolio.Site) []TeamMember {
	return BySite(s.Team, site, TeamMember.SiteOf)
}

func (s *Snapshot) MaintenanceFor(site portfolio.Site) []MaintenancePrediction {
	return BySite(s.Maintenance, site, MaintenancePrediction.SiteOf)
}

// AllocationFor limits the resource allocation grid to the team members of
// site. The result is empty when no member of site appears in the grid.
func (s *Snapshot) AllocationFor(site portfolio.Site) Matrix {
	if site == portfolio.SiteAll || site == "" {
		return s.ResourceAllocation
	}
	var names []string
	for _, m := range s.TeamFor(site) {
		names = append(names, m.Name)
	}
	return s.ResourceAllocation.SelectRows(names)
}
