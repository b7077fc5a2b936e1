package skola24

import (
	"net/url"
	"time"

	"skolexport/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/skola24")

// Client talks to the timetable rendering service. Every request
// carries the authorization scope captured from the schedule page's
// own traffic; render keys are requested fresh per fetch.
type Client struct {
	http *resty.Client
	// host field the render endpoint expects in its request body,
	// derived from the base url
	host string
}

type ClientOptions struct {
	BaseUrl string
	// authorization scope captured by ScopeTransport, read-only from
	// here on
	Scope string
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("X-Scope", opts.Scope)
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/skola24/http")

	return &Client{
		http: client,
		host: baseUrl.Hostname(),
	}, nil
}
