package skolplattformen

import (
	"errors"
	"net/http/cookiejar"
	"net/url"
	"time"

	"skolexport/lib/scrapers/skola24"
	"skolexport/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/skolplattformen")

var ErrAuthenticationFailed = errors.New("failed to authenticate against the portal")

const (
	DefaultBaseUrl      = "https://skolplattformen.stockholm.se"
	DefaultScheduleHost = "fns.stockholm.se"
)

// Client drives the interactive portal session: the multi-step SSO
// login and the navigation into the timetable sub-application. All of
// its traffic flows through a scope-capturing transport so the
// schedule authorization header is observed the moment the session
// first sends it.
type Client struct {
	BaseUrl      *url.URL
	Http         *resty.Client
	ScheduleHost string

	scope *skola24.ScopeTransport
}

type ClientOptions struct {
	BaseUrl      string
	ScheduleHost string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.ScheduleHost == "" {
		opts.ScheduleHost = DefaultScheduleHost
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	scope := skola24.NewScopeTransport(
		cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport),
	)
	client.GetClient().Transport = scope

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	// the SSO sequence hops between the portal and the identity
	// provider, so a domain-locked redirect policy would strand it
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(15))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/skolplattformen/http")

	return &Client{
		BaseUrl:      baseUrl,
		Http:         client,
		ScheduleHost: opts.ScheduleHost,
		scope:        scope,
	}, nil
}
