package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

type newsMatter struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Date    string `yaml:"date"`
	Summary string `yaml:"summary"`
	Locale  string `yaml:"locale"`
}

var newsDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadNews reads markdown news posts with YAML front matter from dir. The
// locale comes from the front matter or, failing that, from the first path
// segment below dir (news/en/launch.md).
func LoadNews(files fs.FS, dir string) (map[string][]content.NewsPost, error) {
	out := make(map[string][]content.NewsPost)
	err := fs.WalkDir(files, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".md") {
			return nil
		}
		raw, err := fs.ReadFile(files, p)
		if err != nil {
			return fmt.Errorf("content loader: read %s: %w", p, err)
		}
		post, err := parseNewsPost(p, dir, raw)
		if err != nil {
			return err
		}
		if post.Locale == "" {
			return fmt.Errorf("content loader: %s has no locale", p)
		}
		out[post.Locale] = append(out[post.Locale], post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseNewsPost(p, dir string, raw []byte) (content.NewsPost, error) {
	var matter newsMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &matter)
	if err != nil {
		return content.NewsPost{}, fmt.Errorf("content loader: front matter %s: %w", p, err)
	}

	post := content.NewsPost{
		Slug:    strings.TrimSpace(matter.Slug),
		Title:   strings.TrimSpace(matter.Title),
		Summary: strings.TrimSpace(matter.Summary),
		Body:    string(body),
		Locale:  strings.TrimSpace(matter.Locale),
	}
	if post.Slug == "" {
		post.Slug = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if post.Locale == "" {
		rel := strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
		if idx := strings.Index(rel, "/"); idx > 0 {
			post.Locale = rel[:idx]
		}
	}
	if matter.Date != "" {
		date, ok := parseNewsDate(matter.Date)
		if !ok {
			return content.NewsPost{}, fmt.Errorf("content loader: %s: unrecognised date %q", p, matter.Date)
		}
		post.Date = date
	}
	return post, nil
}

func parseNewsDate(raw string) (time.Time, bool) {
	for _, layout := range newsDateFormats {
		if parsed, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// MergeNews appends loaded posts to the matching locale bundles.
func MergeNews(sites []content.Site, posts map[string][]content.NewsPost) []content.Site {
	if len(posts) == 0 {
		return sites
	}
	out := make([]content.Site, len(sites))
	copy(out, sites)
	for i := range out {
		extra := posts[out[i].Locale]
		if len(extra) == 0 {
			continue
		}
		out[i].NewsPosts = append(append([]content.NewsPost(nil), out[i].NewsPosts...), extra...)
	}
	return out
}
