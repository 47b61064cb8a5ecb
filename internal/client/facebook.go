package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/octobees/leadstorm/internal/entity"
)

const (
	defaultFacebookBaseURL = "https://mbasic.facebook.com"
	facebookTimeout        = 10 * time.Second
	userAgent              = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// FacebookSource scrapes the public, logged-out view of a Facebook group.
type FacebookSource struct {
	client  *http.Client
	baseURL *url.URL
	group   string
}

// NewFacebookSource builds a source for group. An empty baseURL targets
// mbasic.facebook.com.
func NewFacebookSource(client *http.Client, baseURL, group string) (*FacebookSource, error) {
	if client == nil {
		client = &http.Client{Timeout: facebookTimeout}
	}
	if baseURL == "" {
		baseURL = defaultFacebookBaseURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid facebook base url %q", baseURL)
	}
	group = strings.TrimSpace(group)
	if group == "" {
		return nil, fmt.Errorf("facebook group must not be empty")
	}
	return &FacebookSource{client: client, baseURL: base, group: group}, nil
}

// FetchPage loads one page of group posts. An empty cursor loads the first page.
func (s *FacebookSource) FetchPage(ctx context.Context, cursor string) (entity.PostPage, error) {
	target := s.baseURL.String() + "/groups/" + url.PathEscape(s.group)
	if cursor != "" {
		target = cursor
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return entity.PostPage{}, fmt.Errorf("facebook build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := s.client.Do(req)
	if err != nil {
		return entity.PostPage{}, fmt.Errorf("facebook get group page: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return entity.PostPage{}, fmt.Errorf("facebook group page status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return entity.PostPage{}, fmt.Errorf("facebook parse group html: %w", err)
	}

	return entity.PostPage{
		Posts: parsePosts(doc),
		Next:  s.nextPage(doc),
	}, nil
}

func parsePosts(doc *goquery.Document) []entity.Post {
	articles := doc.Find("article")
	if articles.Length() == 0 {
		articles = doc.Find("div[role='article']")
	}

	var posts []entity.Post
	articles.Each(func(_ int, article *goquery.Selection) {
		author := article.Find("header h3 a, h3 strong a, h3 a, strong a").First()
		href, _ := author.Attr("href")

		posts = append(posts, entity.Post{
			Text:     postText(article),
			Name:     cleanText(author.Text()),
			Username: usernameFromHref(href),
		})
	})
	return posts
}

func postText(article *goquery.Selection) string {
	// mbasic marks the story body with data-ft {"tn":"*s"}
	body := article.Find(`div[data-ft*='"tn":"*s"']`).First()
	if body.Length() > 0 {
		return cleanText(body.Text())
	}

	var parts []string
	article.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := cleanText(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

func (s *FacebookSource) nextPage(doc *goquery.Document) string {
	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		label := strings.ToLower(cleanText(a.Text()))
		if !strings.Contains(label, "see more posts") && !strings.Contains(label, "show more") {
			return true
		}
		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil || href == "" {
			return true
		}
		next = s.baseURL.ResolveReference(ref).String()
		return false
	})
	return next
}

func usernameFromHref(href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || href == "" {
		return ""
	}
	if id := u.Query().Get("id"); id != "" {
		return id
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i, seg := range segments {
		if seg == "user" && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	if len(segments) == 0 || segments[0] == "groups" || strings.HasSuffix(segments[0], ".php") {
		return ""
	}
	return segments[0]
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
