package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims the source list and checks the knobs that would
// otherwise fail halfway into a run.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	var sources []Source
	seen := map[string]bool{}
	for _, s := range out.Sources {
		s.University = strings.TrimSpace(s.University)
		s.URL = strings.TrimSpace(s.URL)
		if s.University == "" && s.URL == "" {
			continue
		}
		key := strings.ToLower(s.URL)
		if seen[key] {
			res.addWarn("duplicate source url: %q", s.URL)
			continue
		}
		seen[key] = true
		sources = append(sources, s)
	}
	out.Sources = sources

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if len(out.Sources) == 0 {
		res.addErr("sources must list at least one feed")
	}
	for i, s := range out.Sources {
		if s.University == "" {
			res.addErr("sources[%d].university is required", i)
		}
		u, err := url.Parse(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("sources[%d].url is not a valid URL: %q", i, s.URL)
		}
	}

	if out.Polling.IntervalMinutes < 0 {
		res.addErr("polling.interval_minutes must be >= 0")
	} else if out.Polling.IntervalMinutes > 0 && out.Polling.IntervalMinutes < 5 {
		res.addWarn("polling.interval_minutes is very low (%d) and may hammer the feeds.", out.Polling.IntervalMinutes)
	}

	if out.Feeds.MaxEntriesPerSource < 0 {
		res.addErr("feeds.max_entries_per_source must be >= 0")
	}
	if out.Feeds.RequestsPerSecond < 0 {
		res.addErr("feeds.requests_per_second must be >= 0")
	}

	if out.Structuring.Enabled {
		if out.Structuring.CallBudget <= 0 {
			res.addErr("structuring.call_budget must be > 0 when structuring is enabled")
		}
		if out.Structuring.Model == "" {
			res.addWarn("structuring.model is empty; the default model will be used.")
		}
	}

	return out, res
}
