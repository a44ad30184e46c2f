package page

import (
	"context"
	"strings"

	"github.com/gobwas/glob"
)

// Site is a recognized website category.
type Site string

const (
	SiteLinkedIn     Site = "linkedin"
	SiteIndeed       Site = "indeed"
	SiteMonster      Site = "monster"
	SiteGlassdoor    Site = "glassdoor"
	SiteZipRecruiter Site = "ziprecruiter"
	SiteGoogle       Site = "google"
	SiteFacebook     Site = "facebook"
	SiteTwitter      Site = "twitter"
	SiteInstagram    Site = "instagram"
	SiteAmazon       Site = "amazon"
	SiteYouTube      Site = "youtube"
	SiteUnknown      Site = "unknown"
)

// siteRule maps compiled hostname patterns to a site. Patterns are
// substring-style globs over the full lower-cased hostname.
type siteRule struct {
	site     Site
	patterns []glob.Glob
}

// siteRules is the ordered classification table. Order is part of the
// contract: the first rule with a matching pattern wins.
var siteRules = []siteRule{
	{SiteLinkedIn, compileGlobs("*linkedin*")},
	{SiteIndeed, compileGlobs("*indeed*")},
	{SiteMonster, compileGlobs("*monster*")},
	{SiteGlassdoor, compileGlobs("*glassdoor*")},
	{SiteZipRecruiter, compileGlobs("*ziprecruiter*")},
	{SiteGoogle, compileGlobs("*google*")},
	{SiteFacebook, compileGlobs("*facebook*", "*meta*")},
	{SiteTwitter, compileGlobs("*twitter*", "*x.com*")},
	{SiteInstagram, compileGlobs("*instagram*")},
	{SiteAmazon, compileGlobs("*amazon*")},
	{SiteYouTube, compileGlobs("*youtube*")},
}

func compileGlobs(patterns ...string) []glob.Glob {
	globs := make([]glob.Glob, len(patterns))
	for i, p := range patterns {
		globs[i] = glob.MustCompile(p)
	}
	return globs
}

// ClassifyHost classifies a hostname against the ordered site rules.
// Matching is case-insensitive; hostnames matching no rule are
// SiteUnknown.
func ClassifyHost(host string) Site {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return SiteUnknown
	}

	for _, rule := range siteRules {
		for _, g := range rule.patterns {
			if g.Match(host) {
				return rule.site
			}
		}
	}
	return SiteUnknown
}

// DetectWebsite classifies the page the DOM is currently on by its
// hostname.
func DetectWebsite(ctx context.Context, dom DOM) (Site, error) {
	host, err := dom.Hostname(ctx)
	if err != nil {
		return SiteUnknown, err
	}
	return ClassifyHost(host), nil
}
