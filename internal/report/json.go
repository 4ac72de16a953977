package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/colour"
)

// jsonReport is the wire shape of a rendered analysis. Infinite minimum
// distances become null: encoding/json cannot represent +Inf.
type jsonReport struct {
	Source    string                  `json:"source"`
	Algorithm string                  `json:"algorithm"`
	SeedMode  string                  `json:"seed_mode,omitempty"`
	Seed      *int64                  `json:"seed,omitempty"`
	Config    jsonConfig              `json:"config"`
	Palette   []jsonEntry             `json:"palette"`
	Distances []colour.DistanceResult `json:"distances"`
	Summary   jsonSummary             `json:"summary"`
}

type jsonConfig struct {
	Threshold    float64  `json:"threshold"`
	Metric       string   `json:"metric"`
	Space        string   `json:"space"`
	Deficiencies []string `json:"deficiencies"`
}

type jsonEntry struct {
	Rank      int               `json:"rank"`
	Hex       string            `json:"hex"`
	RGB       colour.RGB        `json:"rgb"`
	Weight    float64           `json:"weight"`
	Simulated map[string]string `json:"simulated"`
	MinDeltaE *float64          `json:"min_delta_e"`
	MinAt     string            `json:"min_at,omitempty"`
	Label     string            `json:"label"`
}

type jsonSummary struct {
	Safe    int    `json:"safe"`
	Unsafe  int    `json:"unsafe"`
	AllSafe bool   `json:"all_safe"`
	Verdict string `json:"verdict"`
}

// JSON renders the analysis as indented JSON, terminated by a newline.
func (r *Report) JSON() ([]byte, error) {
	a := r.Analysis

	deficiencies := make([]string, len(a.Config.Deficiencies))
	for i, d := range a.Config.Deficiencies {
		deficiencies[i] = string(d)
	}

	entries := make([]jsonEntry, len(a.Entries))
	for i, e := range a.Entries {
		simulated := make(map[string]string, len(e.Simulated))
		for _, sc := range e.Simulated {
			simulated[string(sc.Deficiency)] = sc.Colour.Hex()
		}
		entry := jsonEntry{
			Rank:      i + 1,
			Hex:       e.Entry.Colour.Hex(),
			RGB:       e.Entry.Colour.RGB8(),
			Weight:    e.Entry.Weight,
			Simulated: simulated,
			MinAt:     string(e.MinAt),
			Label:     string(e.Label),
		}
		if !math.IsInf(e.MinDeltaE, 1) {
			de := e.MinDeltaE
			entry.MinDeltaE = &de
		}
		entries[i] = entry
	}

	out := jsonReport{
		Source:    r.Source,
		Algorithm: string(r.Algorithm),
		Config: jsonConfig{
			Threshold:    a.Config.Threshold,
			Metric:       string(a.Config.Metric),
			Space:        string(a.Config.Space),
			Deficiencies: deficiencies,
		},
		Palette:   entries,
		Distances: a.Distances,
		Summary: jsonSummary{
			Safe:    a.SafeCount(),
			Unsafe:  a.UnsafeCount(),
			AllSafe: a.AllSafe(),
			Verdict: r.Verdict(),
		},
	}
	if r.Algorithm == colour.AlgorithmKMeans {
		out.SeedMode = string(r.SeedMode)
		seed := r.Seed
		out.Seed = &seed
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		data = append(data, '\n')
	}
	return data, nil
}
