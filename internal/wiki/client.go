// Package wiki fetches short topic summaries from the Wikipedia REST API.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/sortwise/sortwise/pkg/sortwise/internalerr"
)

// Client calls the Wikipedia page summary endpoint.
type Client struct {
	BaseURL string

	HTTPClient *http.Client
}

type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ExtractHTML string `json:"extract_html"`
	Type        string `json:"type"`
}

// Summary fetches a one-paragraph summary for topic. Disambiguation
// pages and missing topics are reported as errors.
func (c *Client) Summary(ctx context.Context, topic string) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("wiki: base URL required")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("wiki: empty topic")
	}

	slug := url.PathEscape(strings.ReplaceAll(topic, " ", "_"))
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/page/summary/" + slug

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: no article for %q", internalerr.ErrNotFound, topic)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wiki: unexpected status %s", resp.Status)
	}

	var payload summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Type == "disambiguation" {
		return "", fmt.Errorf("wiki: %q is ambiguous, try a more specific topic", topic)
	}

	extract := payload.Extract
	if extract == "" && payload.ExtractHTML != "" {
		extract = stripHTML(payload.ExtractHTML)
	}
	extract = strings.TrimSpace(extract)
	if extract == "" {
		return "", fmt.Errorf("wiki: empty summary for %q", topic)
	}
	return extract, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// stripHTML flattens markup to the text it contains.
func stripHTML(s string) string {
	node, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(strings.Fields(b.String()), " ")
}
