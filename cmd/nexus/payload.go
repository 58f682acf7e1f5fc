package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/coordinator"
)

// parsePayload turns a command-line argument into a payload: a JSON object
// becomes a Record, anything else stays text.
func parsePayload(arg string) (adapter.Payload, error) {
	trimmed := strings.TrimSpace(arg)
	if !strings.HasPrefix(trimmed, "{") {
		return arg, nil
	}
	var rec adapter.Record
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return nil, fmt.Errorf("payload looks like JSON but does not parse: %w", err)
	}
	return rec, nil
}

// printer writes reports in the selected output format.
type printer struct {
	w      io.Writer
	format string
}

const (
	outputText = "text"
	outputJSON = "json"
)

func (p printer) report(r adapter.Report) error {
	if p.format == outputJSON {
		return json.NewEncoder(p.w).Encode(r.Fields())
	}
	switch {
	case r.Succeeded() && r.Recovered:
		_, err := fmt.Fprintf(p.w, "[%s] %s (recovered from: %v)\n", r.ProducerID, r.Summary, r.PrimaryCause)
		return err
	case r.Succeeded():
		_, err := fmt.Fprintf(p.w, "[%s] %s\n", r.ProducerID, r.Summary)
		return err
	case r.Halt != nil:
		_, err := fmt.Fprintf(p.w, "[%s] failed: %v\n", r.ProducerID, r.Halt)
		return err
	default:
		_, err := fmt.Fprintf(p.w, "[%s] failed: %v\n", r.ProducerID, r.Cause)
		return err
	}
}

func (p printer) reports(rs []adapter.Report) error {
	for _, r := range rs {
		if err := p.report(r); err != nil {
			return err
		}
	}
	return nil
}

func (p printer) stats(all []coordinator.Stats) error {
	if p.format == outputJSON {
		return json.NewEncoder(p.w).Encode(map[string]any{"stats": all})
	}
	for _, s := range all {
		if _, err := fmt.Fprintf(p.w, "%s (%s): %d processed, %d succeeded, %d failed, %d recovered\n",
			s.ProducerID, s.Kind, s.Processed, s.Succeeded, s.Failed, s.Recovered); err != nil {
			return err
		}
	}
	return nil
}
