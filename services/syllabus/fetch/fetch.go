package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("services/syllabus/fetch")

var ErrNothingSaved = fmt.Errorf("no syllabus pages could be downloaded")

type ClientOptions struct {
	// Cookie header value sent verbatim, e.g. "JSESSIONID=..."
	AuthCookie string
	UserAgent  string
	// minimum delay between requests
	Delay   time.Duration
	Timeout time.Duration
	// nil picks the transliterating slugifier
	Slugifier Slugifier
}

type Client struct {
	http      *resty.Client
	limiter   *rate.Limiter
	slugifier Slugifier
}

func NewClient(opts ClientOptions) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; syllabus-harvester/1.0)"
	}
	if opts.Delay <= 0 {
		opts.Delay = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.Slugifier == nil {
		opts.Slugifier = NewSlugifier()
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", opts.UserAgent)
	if opts.AuthCookie != "" {
		client.SetHeader("cookie", opts.AuthCookie)
	}
	client.SetTimeout(opts.Timeout)

	return &Client{
		http:      client,
		limiter:   rate.NewLimiter(rate.Every(opts.Delay), 1),
		slugifier: opts.Slugifier,
	}
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:fetchPage")
	defer span.End()

	var body []byte
	err := retry.Do(
		func() error {
			res, err := c.http.R().
				SetContext(ctx).
				Get(pageURL)
			if err != nil {
				return err
			}
			if res.IsError() {
				return fmt.Errorf("%s: status %d", pageURL, res.StatusCode())
			}
			body = res.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, err
	}
	return body, nil
}

// Download fetches every target into outputDir and returns the number of
// pages saved. Individual failures are logged and skipped; only a run
// that saves nothing is an error.
func (c *Client) Download(ctx context.Context, targets []Target, outputDir string) (int, error) {
	ctx, span := tracer.Start(ctx, "client:Download")
	defer span.End()

	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create output directory")
		return 0, err
	}

	used := map[string]bool{}
	saved := 0
	for i, target := range targets {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return saved, err
		}

		body, err := c.fetchPage(ctx, target.URL)
		if err != nil {
			slog.WarnContext(ctx, "skipping failed download", "url", target.URL, "err", err)
			continue
		}

		name := uniqueName(ResolveFileName(target, i+1, c.slugifier), used)
		err = os.WriteFile(filepath.Join(outputDir, name), body, 0644)
		if err != nil {
			slog.WarnContext(ctx, "skipping unwritable file", "file", name, "err", err)
			continue
		}

		slog.InfoContext(ctx, "saved syllabus page", "url", target.URL, "file", name)
		saved++
	}

	if saved == 0 {
		span.SetStatus(codes.Error, ErrNothingSaved.Error())
		return 0, ErrNothingSaved
	}
	return saved, nil
}

func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		used[name] = true
		return name
	}
	base := strings.TrimSuffix(name, ".html")
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d.html", base, i)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}
