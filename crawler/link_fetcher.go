package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"unisearch/pipeline"
)

var (
	// Static and compile-time check to ensure linkFetcher implements the
	// pipeline.Processor interface.
	_ pipeline.Processor = (*linkFetcher)(nil)

	// Links that point to content the text stages cannot use.
	exclusionRegex = regexp.MustCompile(`(?i)\.(?:jpg|jpeg|png|gif|ico|css|js|pdf|zip)$`)
)

// Classification of a failed fetch. Failures are terminal for the URL in
// the current crawl run but never abort the run itself.
const (
	fetchTimeout          = "timeout"
	fetchConnectionFailed = "connection_failed"
	fetchHTTPError        = "http_error"
	fetchRedirectLoop     = "redirect_loop"
)

// linkFetcher is the first stage of the crawl pipeline. It retrieves the
// content behind each frontier URL and stores it in the payload's
// RawContent buffer, decoded to UTF-8. Payloads that cannot be fetched,
// point to private networks, are disallowed by robots.txt or do not carry
// HTML are dropped.
type linkFetcher struct {
	urlGetter   URLGetter
	netDetector PrivateNetworkDetector
	robots      RobotsPolicy
	logger      *logrus.Entry
}

func newLinkFetcher(
	urlGetter URLGetter,
	netDetector PrivateNetworkDetector,
	robots RobotsPolicy,
	logger *logrus.Entry,
) *linkFetcher {
	return &linkFetcher{
		urlGetter:   urlGetter,
		netDetector: netDetector,
		robots:      robots,
		logger:      logger,
	}
}

func (p *linkFetcher) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {
	cPayload, ok := payload.(*crawlerPayload)
	if !ok {
		return nil, nil
	}

	if exclusionRegex.MatchString(cPayload.URL) {
		return nil, nil
	}

	if p.robots != nil && !p.robots.Allowed(cPayload.URL) {
		p.logger.WithField("url", cPayload.URL).Debug("skipping URL disallowed by robots.txt")

		return nil, nil
	}

	// Fetching hosts inside private networks is a security risk.
	isPrivate, err := p.isNetworkPrivate(cPayload.URL)
	if err != nil || isPrivate {
		return nil, nil
	}

	resp, err := p.urlGetter.Get(cPayload.URL)
	if err != nil {
		p.logFetchFailure(cPayload.URL, classifyFetchError(err), err)

		return nil, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logFetchFailure(
			cPayload.URL, fetchHTTPError,
			fmt.Errorf("unexpected status %d", resp.StatusCode),
		)

		return nil, nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "html") {
		return nil, nil
	}

	// Normalize legacy charsets to UTF-8 before the text stages see the
	// content.
	body, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		p.logFetchFailure(cPayload.URL, fetchConnectionFailed, err)

		return nil, nil
	}

	if _, err = io.Copy(&cPayload.RawContent, body); err != nil {
		p.logFetchFailure(cPayload.URL, classifyFetchError(err), err)

		return nil, nil
	}

	return cPayload, nil
}

func (p *linkFetcher) isNetworkPrivate(urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false, err
	}

	return p.netDetector.IsPrivate(parsed.Hostname())
}

func (p *linkFetcher) logFetchFailure(url, kind string, err error) {
	p.logger.WithFields(logrus.Fields{
		"url":   url,
		"kind":  kind,
		"error": err.Error(),
	}).Warn("fetch failed")
}

func classifyFetchError(err error) string {
	if errors.Is(err, ErrRedirectLoop) {
		return fetchRedirectLoop
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fetchTimeout
	}

	return fetchConnectionFailed
}
