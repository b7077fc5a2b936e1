package commands

import (
	"os"

	"skolexport/lib/configutil"
	"skolexport/lib/uploader"
)

type config struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`

	BaseUrl      string `json:"base_url"`
	ScheduleHost string `json:"schedule_host"`

	// csv artifact path, defaults to result.csv
	Output string `json:"output"`
	// optional .ics artifact path
	IcsOutput string `json:"ics_output"`
	// optional snapshot database enabling the diff command
	SnapshotDb string `json:"snapshot_db"`

	Uploader uploader.Config `json:"uploader"`
}

func loadConfig() (config, error) {
	cfg, err := configutil.ReadConfig[config](configPath)
	if os.IsNotExist(err) {
		// everything can come from prompts instead
		return config{}, nil
	}
	if err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) output() string {
	if c.Output == "" {
		return "result.csv"
	}
	return c.Output
}
