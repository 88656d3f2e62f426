// Package main implements a mock MWS endpoint for local development. It
// verifies request signatures against a configured secret key and answers
// with canned XML: service status, two-page List* results and feed
// submission receipts. Point the CLI at it with --endpoint.
package main

import (
	"flag"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

const (
	quotaMax      = 60
	lastPageToken = "mock-page-2"
)

type server struct {
	secretKey     string
	throttleEvery int64
	requests      atomic.Int64
	logger        *slog.Logger
	nowFunc       func() time.Time
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	secret := flag.String("secret-key", "mock-secret", "secret key used to verify signatures")
	throttle := flag.Int64("throttle-every", 0, "answer every Nth request with RequestThrottled (0 disables)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := &server{
		secretKey:     *secret,
		throttleEvery: *throttle,
		logger:        logger,
		nowFunc:       time.Now,
	}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock MWS server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// routes answers every section path.
func (s *server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(recovery(s.logger), requestLog(s.logger))
	e.Any("/", s.handle)
	e.Any("/*", s.handle)
	return e
}

func (s *server) handle(c echo.Context) error {
	n := s.requests.Add(1)
	r := c.Request()

	if r.Method != http.MethodPost {
		return writeError(c, http.StatusMethodNotAllowed, "InvalidHttpMethod", "MWS requests must be POSTed")
	}

	query := c.QueryParams()
	p := make(params.Values, len(query))
	for k, v := range query {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}
	signature := p["Signature"]
	delete(p, "Signature")
	if want := mws.Sign(s.secretKey, r.Method, r.Host, r.URL.Path, p); signature != want {
		s.logger.Warn("signature mismatch", "path", r.URL.Path, "action", p.Action())
		return writeError(c, http.StatusForbidden, "SignatureDoesNotMatch",
			"The request signature we calculated does not match the signature you provided")
	}

	if s.throttleEvery > 0 && n%s.throttleEvery == 0 {
		return writeError(c, http.StatusServiceUnavailable, "RequestThrottled", "Request is throttled")
	}

	action := p.Action()
	var result string
	switch {
	case action == mws.ActionGetServiceStatus:
		result = "<Status>GREEN</Status><Timestamp>" + s.nowFunc().UTC().Format(time.RFC3339) + "</Timestamp>"
	case action == "SubmitFeed":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "InvalidRequest", "reading feed body failed")
		}
		if r.Header.Get("Content-MD5") != mws.ContentMD5(body) {
			return writeError(c, http.StatusBadRequest, "ContentMD5DoesNotMatch",
				"the Content-MD5 HTTP header you passed for your feed did not match the Content-MD5 we calculated")
		}
		s.logger.Info("feed received", "feed_type", p["FeedType"], "bytes", len(body))
		result = feedSubmissionInfo(n, p["FeedType"])
	case strings.HasSuffix(action, params.ByNextTokenSuffix):
		if p[params.NextTokenKey] != lastPageToken {
			return writeError(c, http.StatusBadRequest, "InvalidParameterValue", "Invalid NextToken")
		}
		result = "<Page>2</Page>"
	case strings.HasPrefix(action, "List") || (strings.HasPrefix(action, "Get") && strings.HasSuffix(action, "List")):
		result = "<Page>1</Page><NextToken>" + lastPageToken + "</NextToken><HasNext>true</HasNext>"
	}

	h := c.Response().Header()
	h.Set("x-mws-quota-max", strconv.Itoa(quotaMax))
	h.Set("x-mws-quota-remaining", strconv.FormatInt(max(quotaMax-n, 0), 10))
	h.Set("x-mws-quota-resetsOn", s.nowFunc().UTC().Add(time.Hour).Truncate(time.Hour).Format(time.RFC3339))
	return c.Blob(http.StatusOK, "text/xml", []byte(document(action, result, requestID(c))))
}

func feedSubmissionInfo(id int64, feedType string) string {
	return "<FeedSubmissionInfo>" +
		"<FeedSubmissionId>" + strconv.FormatInt(id, 10) + "</FeedSubmissionId>" +
		"<FeedType>" + html.EscapeString(feedType) + "</FeedType>" +
		"<FeedProcessingStatus>_SUBMITTED_</FeedProcessingStatus>" +
		"</FeedSubmissionInfo>"
}

func document(action, result, requestID string) string {
	return `<?xml version="1.0"?>` +
		"<" + action + "Response>" +
		"<" + action + "Result>" + result + "</" + action + "Result>" +
		"<ResponseMetadata><RequestId>" + requestID + "</RequestId></ResponseMetadata>" +
		"</" + action + "Response>"
}

func writeError(c echo.Context, status int, code, message string) error {
	return c.Blob(status, "text/xml", []byte(fmt.Sprintf(`<?xml version="1.0"?>`+
		"<ErrorResponse><Error><Type>Sender</Type><Code>%s</Code><Message>%s</Message></Error>"+
		"<RequestID>%s</RequestID></ErrorResponse>",
		code, html.EscapeString(message), requestID(c))))
}
