package analyzer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/nikogura/jobmatcher/pkg/report"
)

const (
	// DefaultBaseURL is where the analysis service listens during local development.
	DefaultBaseURL = "http://localhost:8000"
	// MatchJobsPath is the analysis endpoint path.
	MatchJobsPath = "/match-jobs"
	// DefaultTimeout bounds a whole submission, including reading the body.
	DefaultTimeout = 30 * time.Second
	// UserAgent identifies the client to the service.
	UserAgent = "jobmatcher/1.0"
)

// Multipart field names.
const (
	fieldSkills      = "skills"
	fieldDesiredJobs = "desired_jobs"
	fieldFile        = "file"
)

// Upload is a file attached to a submission.
type Upload struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Request is a validated submission. Empty fields are not sent.
type Request struct {
	Skills      string
	DesiredJobs string
	File        *Upload
}

// Client submits profiles to the analysis service.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the service at baseURL. A zero timeout
// selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (client *Client) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client = &Client{
		endpoint:   Endpoint(baseURL),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
	}
	return client
}

// SetLogger directs request diagnostics to logger.
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Endpoint returns the URL of the match endpoint under baseURL.
func Endpoint(baseURL string) (endpoint string) {
	endpoint = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(endpoint, MatchJobsPath) {
		endpoint += MatchJobsPath
	}
	return endpoint
}

// Submit posts the request and returns the decoded report. Failures are
// one of TimeoutError, ServerError, NetworkError, EmptyResponseError or
// MalformedResponseError; see Message for their user-facing text.
func (c *Client) Submit(ctx context.Context, req Request) (rep report.Report, err error) {
	var body bytes.Buffer
	var contentType string
	contentType, err = buildMultipart(&body, req)
	if err != nil {
		err = pkgerrors.Wrap(err, "failed to build multipart body")
		return rep, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		err = pkgerrors.Wrap(err, "failed to create HTTP request")
		return rep, err
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", UserAgent)
	httpReq.Header.Set("X-Request-ID", requestID)

	logger := c.logger.With(slog.String("request_id", requestID), slog.String("endpoint", c.endpoint))
	logger.Debug("submitting profile",
		slog.Bool("skills", req.Skills != ""),
		slog.Bool("desired_jobs", req.DesiredJobs != ""),
		slog.Bool("file", req.File != nil),
	)
	started := time.Now()

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = classifyTransportError(ctx, err)
		logger.Debug("submission failed", slog.Duration("elapsed", time.Since(started)), slog.Any("error", err))
		return rep, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = classifyTransportError(ctx, err)
		logger.Debug("reading response failed", slog.Duration("elapsed", time.Since(started)), slog.Any("error", err))
		return rep, err
	}

	logger.Debug("response received",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(respBody)),
		slog.Duration("elapsed", time.Since(started)),
	)

	rep, err = decodeResponse(resp, respBody)
	return rep, err
}

func decodeResponse(resp *http.Response, body []byte) (rep report.Report, err error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = &ServerError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Message:    serverMessage(body),
		}
		return rep, err
	}

	if report.Empty(body) {
		err = &EmptyResponseError{StatusCode: resp.StatusCode}
		return rep, err
	}

	rep, err = report.Parse(body)
	if err != nil {
		err = &MalformedResponseError{Err: err}
		return rep, err
	}

	return rep, err
}

// classifyTransportError separates the client timeout from other failures
// to get a response.
func classifyTransportError(ctx context.Context, err error) (classified error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		classified = &TimeoutError{Err: err}
		return classified
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		classified = &TimeoutError{Err: err}
		return classified
	}

	classified = &NetworkError{Err: err}
	return classified
}

// serverMessage extracts the explanation from an error body, if it has one.
func serverMessage(body []byte) (msg string) {
	if !gjson.ValidBytes(body) {
		return msg
	}

	for _, key := range []string{"message", "error", "detail"} {
		res := gjson.GetBytes(body, key)
		if res.Type == gjson.String && res.Str != "" {
			msg = res.Str
			return msg
		}
	}

	return msg
}

// statusText returns the reason phrase of the response status line.
func statusText(resp *http.Response) (text string) {
	if idx := strings.IndexByte(resp.Status, ' '); idx >= 0 {
		text = strings.TrimSpace(resp.Status[idx+1:])
	}
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// buildMultipart writes the form fields of req into w.
func buildMultipart(w io.Writer, req Request) (contentType string, err error) {
	mw := multipart.NewWriter(w)

	if req.Skills != "" {
		err = mw.WriteField(fieldSkills, req.Skills)
		if err != nil {
			err = pkgerrors.Wrap(err, "failed to write skills field")
			return contentType, err
		}
	}

	if req.DesiredJobs != "" {
		err = mw.WriteField(fieldDesiredJobs, req.DesiredJobs)
		if err != nil {
			err = pkgerrors.Wrap(err, "failed to write desired_jobs field")
			return contentType, err
		}
	}

	if req.File != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+fieldFile+`"; filename="`+escapeQuotes(req.File.Name)+`"`)
		mimeType := req.File.MIMEType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		header.Set("Content-Type", mimeType)

		var part io.Writer
		part, err = mw.CreatePart(header)
		if err != nil {
			err = pkgerrors.Wrap(err, "failed to create file part")
			return contentType, err
		}

		_, err = part.Write(req.File.Data)
		if err != nil {
			err = pkgerrors.Wrapf(err, "failed to write file part: %s", req.File.Name)
			return contentType, err
		}
	}

	err = mw.Close()
	if err != nil {
		err = pkgerrors.Wrap(err, "failed to close multipart writer")
		return contentType, err
	}

	contentType = mw.FormDataContentType()
	return contentType, err
}

func escapeQuotes(s string) (escaped string) {
	escaped = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
	return escaped
}
