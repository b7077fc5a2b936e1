package commands

import (
	"context"
	"fmt"

	"skolexport/lib/scrapers/skola24"
	"skolexport/lib/scrapers/skolplattformen"
	"skolexport/lib/timezone"
)

// establishSession performs the interactive login and schedule-app
// navigation, prompting for any credential the config leaves blank,
// and returns a render client bound to the captured scope.
func establishSession(ctx context.Context, cfg config) (*skola24.Client, skolplattformen.ScheduleSession, error) {
	var err error

	email := cfg.Email
	if email == "" {
		email, err = promptString("Email")
		if err != nil {
			return nil, skolplattformen.ScheduleSession{}, err
		}
	}
	username := cfg.Username
	if username == "" {
		username, err = promptString("Username")
		if err != nil {
			return nil, skolplattformen.ScheduleSession{}, err
		}
	}
	password := cfg.Password
	if password == "" {
		password, err = promptPassword("Password")
		if err != nil {
			return nil, skolplattformen.ScheduleSession{}, err
		}
	}

	portal, err := skolplattformen.NewClient(skolplattformen.ClientOptions{
		BaseUrl:      cfg.BaseUrl,
		ScheduleHost: cfg.ScheduleHost,
	})
	if err != nil {
		return nil, skolplattformen.ScheduleSession{}, err
	}

	err = portal.Login(ctx, email, username, password)
	if err != nil {
		return nil, skolplattformen.ScheduleSession{}, err
	}

	session, err := portal.OpenSchedule(ctx)
	if err != nil {
		return nil, skolplattformen.ScheduleSession{}, err
	}

	client, err := skola24.NewClient(skola24.ClientOptions{
		BaseUrl: fmt.Sprintf("https://%s", portal.ScheduleHost),
		Scope:   session.Scope,
	})
	if err != nil {
		return nil, skolplattformen.ScheduleSession{}, err
	}

	return client, session, nil
}

var (
	flagYear      int
	flagWeekStart int
	flagWeekEnd   int
)

// resolveRange fills year and week bounds from flags, prompting for
// whatever was not given. Defaults mirror the portal's view: current
// year, current week through the year's last ISO week.
func resolveRange() (int, []int, error) {
	now := timezone.Now()
	_, currentWeek := now.ISOWeek()

	year := flagYear
	if year == 0 {
		var err error
		year, err = promptInt("Year", now.Year())
		if err != nil {
			return 0, nil, err
		}
	}

	start := flagWeekStart
	if start == 0 {
		var err error
		start, err = promptInt("Starting week number", currentWeek)
		if err != nil {
			return 0, nil, err
		}
	}

	end := flagWeekEnd
	if end == 0 {
		var err error
		end, err = promptInt("Ending week number", skola24.WeeksInYear(year))
		if err != nil {
			return 0, nil, err
		}
	}

	if end < start {
		return 0, nil, fmt.Errorf("ending week %d is before starting week %d", end, start)
	}

	weeks := make([]int, 0, end-start+1)
	for w := start; w <= end; w++ {
		weeks = append(weeks, w)
	}
	return year, weeks, nil
}
