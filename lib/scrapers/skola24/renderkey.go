package skola24

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

type renderKeyResponse struct {
	Data struct {
		Key string `json:"key"`
	} `json:"data"`
}

// RenderKey requests a one-time key authorizing a single render fetch.
// The service may reject reuse, so callers get a fresh one per week.
func (c *Client) RenderKey(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "RenderKey")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Post("/ng/api/get/timetable/render/key")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request render key")
		return "", fmt.Errorf("%w: %w", ErrRenderKeyFetch, err)
	}

	var body renderKeyResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse render key response")
		return "", fmt.Errorf("%w: %w", ErrRenderKeyFetch, err)
	}
	if body.Data.Key == "" {
		span.SetStatus(codes.Error, "empty render key")
		return "", fmt.Errorf("%w: response carried no key", ErrRenderKeyFetch)
	}

	return body.Data.Key, nil
}
