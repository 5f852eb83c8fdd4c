package textsrc

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// FilePrefix marks an input as a path to read, e.g. "@skills.txt".
const FilePrefix = "@"

// Fetch resolves text input that may be literal, a file reference or a URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext resolves text input with context. "@path" reads a file,
// an http(s) URL is fetched and reduced to text, and anything else is
// returned as given.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	if strings.HasPrefix(input, FilePrefix) {
		path := strings.TrimPrefix(input, FilePrefix)
		content, err = fetchFromFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read text from file: %s", path)
			return content, err
		}
		return content, err
	}

	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") && parsedURL.Host != "" {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch text from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content = input
	return content, err
}

// fetchFromFile reads text from a file.
func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = strings.TrimSpace(string(data))
	if content == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

// fetchFromURL retrieves a page, such as a job posting, as plain text.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "jobmatcher/1.0")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(bodyBytes)
	if looksLikeHTML(resp.Header.Get("Content-Type"), content) {
		content, err = htmlToText(content)
		if err != nil {
			return content, err
		}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

func looksLikeHTML(contentType, body string) (isHTML bool) {
	if strings.Contains(strings.ToLower(contentType), "html") {
		isHTML = true
		return isHTML
	}
	trimmed := strings.ToLower(strings.TrimSpace(body))
	isHTML = strings.HasPrefix(trimmed, "<!doctype html") || strings.HasPrefix(trimmed, "<html")
	return isHTML
}

// htmlToText drops script and style content and collapses whitespace.
func htmlToText(html string) (text string, err error) {
	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return text, err
	}

	doc.Find("script, style, noscript, template").Remove()

	text = strings.Join(strings.Fields(doc.Text()), " ")
	return text, err
}
