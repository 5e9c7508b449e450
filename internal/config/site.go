package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteFile is the optional YAML description of the site and its content
// repository. Environment variables override every field.
//
//	site:
//	  url: https://adsnow.ro
//	  name: Blog AdsNow
//	  language: ro
//	defaults:
//	  author: Echipa AdsNow
//	  category: Marketing Digital
//	github:
//	  owner: adsnow
//	  repo: adsnow-site
//	  branch: main
type SiteFile struct {
	Site struct {
		URL         string `yaml:"url"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Language    string `yaml:"language"`
		RSSItems    int    `yaml:"rss_items"`
	} `yaml:"site"`
	Defaults struct {
		Author   string `yaml:"author"`
		Category string `yaml:"category"`
		Image    string `yaml:"image"`
	} `yaml:"defaults"`
	GitHub struct {
		Owner       string `yaml:"owner"`
		Repo        string `yaml:"repo"`
		Branch      string `yaml:"branch"`
		ContentPath string `yaml:"content_path"`
		SitemapPath string `yaml:"sitemap_path"`
	} `yaml:"github"`
}

// LoadSiteFile reads a site file. A missing file yields an empty SiteFile
// and no error.
func LoadSiteFile(path string) (SiteFile, error) {
	var sf SiteFile
	if path == "" {
		return sf, nil
	}
	// #nosec G304 -- path comes from SITE_CONFIG or a CLI flag
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sf, nil
		}
		return sf, fmt.Errorf("failed to read site config: %w", err)
	}
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("failed to parse site config %s: %w", path, err)
	}
	return sf, nil
}
