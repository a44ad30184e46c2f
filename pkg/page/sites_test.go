package page_test

import (
	"context"
	"errors"
	"testing"

	"github.com/entrhq/pagevoice/pkg/page"
	"github.com/entrhq/pagevoice/pkg/page/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHost(t *testing.T) {
	tests := []struct {
		host string
		want page.Site
	}{
		{"www.linkedin.com", page.SiteLinkedIn},
		{"de.indeed.com", page.SiteIndeed},
		{"www.monster.com", page.SiteMonster},
		{"www.glassdoor.com", page.SiteGlassdoor},
		{"www.ziprecruiter.com", page.SiteZipRecruiter},
		{"careers.google.com", page.SiteGoogle},
		{"www.facebook.com", page.SiteFacebook},
		{"about.meta.com", page.SiteFacebook},
		{"twitter.com", page.SiteTwitter},
		{"x.com", page.SiteTwitter},
		{"www.instagram.com", page.SiteInstagram},
		{"www.amazon.de", page.SiteAmazon},
		{"www.youtube.com", page.SiteYouTube},
		{"WWW.LINKEDIN.COM", page.SiteLinkedIn},
		{"example.org", page.SiteUnknown},
		{"", page.SiteUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, page.ClassifyHost(tt.host))
		})
	}
}

func TestClassifyHostOrder(t *testing.T) {
	// Rule order decides when several rules could match: linkedin is
	// tested before google.
	assert.Equal(t, page.SiteLinkedIn, page.ClassifyHost("linkedin.google.com"))
}

func TestDetectWebsite(t *testing.T) {
	dom := &mock.DOM{Host: "www.linkedin.com"}

	site, err := page.DetectWebsite(context.Background(), dom)

	require.NoError(t, err)
	assert.Equal(t, page.SiteLinkedIn, site)
}

func TestDetectWebsiteError(t *testing.T) {
	dom := &mock.DOM{HostErr: errors.New("page closed")}

	site, err := page.DetectWebsite(context.Background(), dom)

	assert.Error(t, err)
	assert.Equal(t, page.SiteUnknown, site)
}
