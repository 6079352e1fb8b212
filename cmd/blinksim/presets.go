package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"blinkcode-go/errcode"
	"blinkcode-go/types"
)

// Preset is one named pattern in a presets file:
//
//	[[preset]]
//	name = "sos"
//	text = "sos"
//	unit_ms = 100
type Preset struct {
	Name   string   `toml:"name"`
	Text   string   `toml:"text,omitempty"`
	Code   string   `toml:"code,omitempty"`
	Steps  []uint32 `toml:"steps,omitempty"`
	UnitMs uint32   `toml:"unit_ms,omitempty"`
	Once   bool     `toml:"once,omitempty"`
}

type presetFile struct {
	Preset []Preset `toml:"preset"`
}

// Blink converts the preset to a HAL blink request. Exactly one of text,
// code and steps must be set.
func (p Preset) Blink() (types.LEDBlink, error) {
	b := types.LEDBlink{UnitMs: p.UnitMs, Once: p.Once}
	set := 0
	if p.Text != "" {
		b.Encoding, b.Text = types.EncodingText, p.Text
		set++
	}
	if p.Code != "" {
		b.Encoding, b.Code = types.EncodingCode, p.Code
		set++
	}
	if len(p.Steps) > 0 {
		b.Encoding, b.Durations = types.EncodingSteps, p.Steps
		set++
	}
	if set != 1 {
		return b, &errcode.E{C: errcode.InvalidParams, Op: "preset", Msg: p.Name + ": set exactly one of text, code, steps"}
	}
	return b, nil
}

// LoadPresets reads a presets file keyed by preset name.
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f presetFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errcode.Wrap("presets.load", errcode.InvalidPayload, err)
	}
	out := make(map[string]Preset, len(f.Preset))
	for _, p := range f.Preset {
		if p.Name == "" {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "presets.load", Msg: "preset without name"}
		}
		if _, dup := out[p.Name]; dup {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "presets.load", Msg: "duplicate preset " + p.Name}
		}
		out[p.Name] = p
	}
	return out, nil
}

// SavePresets writes presets sorted by name.
func SavePresets(path string, presets map[string]Preset) error {
	f := presetFile{Preset: make([]Preset, 0, len(presets))}
	for _, p := range presets {
		f.Preset = append(f.Preset, p)
	}
	sort.Slice(f.Preset, func(i, j int) bool { return f.Preset[i].Name < f.Preset[j].Name })
	data, err := toml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newPresetsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the presets in a presets file",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := LoadPresets(file)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(presets))
			for n := range presets {
				names = append(names, n)
			}
			sort.Strings(names)
			w := cmd.OutOrStdout()
			for _, n := range names {
				b, err := presets[n].Blink()
				if err != nil {
					fmt.Fprintf(w, "%-12s invalid: %v\n", n, err)
					continue
				}
				p, err := patternFor(b)
				if err != nil {
					fmt.Fprintf(w, "%-12s invalid: %v\n", n, err)
					continue
				}
				fmt.Fprintf(w, "%-12s %-5s %3d steps, period %d ms\n", n, b.Encoding, p.Len(), p.PeriodMs())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "presets", "p", "presets.toml", "presets file")
	return cmd
}
