package skola24

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
)

// WeekResult is the settled outcome of one week's pipeline. A week
// with no lessons (holidays) is Err == nil with an empty Lessons
// slice; that is not the same thing as a failed fetch.
type WeekResult struct {
	Week    int
	Lessons []Lesson
	Err     error
}

func (c *Client) fetchWeek(ctx context.Context, week, year int, sel Selection) ([]Lesson, error) {
	key, err := c.RenderKey(ctx)
	if err != nil {
		return nil, err
	}
	tt, err := c.RenderTimetable(ctx, key, week, year, sel)
	if err != nil {
		return nil, err
	}
	return CorrelateLessons(tt, week, year)
}

// FetchWeeks runs the key-exchange → render → correlate pipeline for
// every requested week concurrently. Results settle independently:
// results[i] always belongs to weeks[i] regardless of which network
// fetch completes first, and one failed week never cancels its
// siblings.
func (c *Client) FetchWeeks(ctx context.Context, year int, sel Selection, weeks []int) []WeekResult {
	ctx, span := tracer.Start(ctx, "FetchWeeks")
	defer span.End()
	span.SetAttributes(
		attribute.Int("year", year),
		attribute.IntSlice("weeks", weeks),
	)

	return settleWeeks(ctx, weeks, func(ctx context.Context, week int) ([]Lesson, error) {
		slog.DebugContext(ctx, "fetching week", "week", week, "year", year)
		return c.fetchWeek(ctx, week, year, sel)
	})
}

func settleWeeks(
	ctx context.Context,
	weeks []int,
	fetch func(ctx context.Context, week int) ([]Lesson, error),
) []WeekResult {
	results := make([]WeekResult, len(weeks))
	wg := sync.WaitGroup{}

	for i, week := range weeks {
		wg.Add(1)
		go func(i, week int) {
			defer wg.Done()
			lessons, err := fetch(ctx, week)
			results[i] = WeekResult{
				Week:    week,
				Lessons: lessons,
				Err:     err,
			}
		}(i, week)
	}

	wg.Wait()
	return results
}

// Flatten concatenates the per-week lesson sequences in request order.
// Any failed week fails the whole batch; callers that want partial
// output can inspect the results themselves instead.
func Flatten(results []WeekResult) ([]Lesson, error) {
	var errlist []error
	var out []Lesson
	for _, r := range results {
		if r.Err != nil {
			errlist = append(errlist, fmt.Errorf("week %d: %w", r.Week, r.Err))
			continue
		}
		out = append(out, r.Lessons...)
	}
	if len(errlist) > 0 {
		return nil, errors.Join(errlist...)
	}
	return out, nil
}
