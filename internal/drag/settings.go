package drag

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/dragstream/internal/dom"
)

// Settings keys in the JSON file.
const (
	settingsDragSelector   = "dragSelector"
	settingsDropSelector   = "dropSelector"
	settingsHandleSelector = "handleSelector"
	settingsAxis           = "axis"
	settingsThrottleMs     = "throttleMs"
	settingsThreshold      = "threshold"
	settingsRule           = "rule"
)

// LoadSettings reads an Options patch from a JSON settings file. An absent
// file yields zero Options, which resolve to the documented defaults.
// Invalid values are configuration errors the caller must fix.
func LoadSettings(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Options{}, nil
	}
	if err != nil {
		return Options{}, fmt.Errorf("drag: read settings: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Options{}, fmt.Errorf("drag: settings %s: invalid JSON", path)
	}

	var opts Options
	opts.DragSelector = gjson.GetBytes(data, settingsDragSelector).String()
	opts.DropSelector = gjson.GetBytes(data, settingsDropSelector).String()
	opts.HandleSelector = gjson.GetBytes(data, settingsHandleSelector).String()

	if v := gjson.GetBytes(data, settingsAxis); v.Exists() {
		switch v.String() {
		case "vertical":
			opts.Axis = AxisVertical
		case "horizontal":
			opts.Axis = AxisHorizontal
		default:
			return Options{}, fmt.Errorf("drag: settings %s: unknown axis %q", path, v.String())
		}
	}
	if v := gjson.GetBytes(data, settingsThrottleMs); v.Exists() {
		opts.ThrottleInterval = time.Duration(v.Int()) * time.Millisecond
	}
	if v := gjson.GetBytes(data, settingsThreshold); v.Exists() {
		opts.Threshold = v.Float()
		if opts.Threshold < 0 || opts.Threshold > 1 {
			return Options{}, fmt.Errorf("drag: settings %s: threshold %v outside [0, 1]", path, opts.Threshold)
		}
	}
	if v := gjson.GetBytes(data, settingsRule); v.Exists() {
		rule, ok := ParseRule(v.String())
		if !ok {
			return Options{}, fmt.Errorf("drag: settings %s: unknown rule %q", path, v.String())
		}
		opts.Rule = func(drop, drag *dom.Node) Rule { return rule }
	}
	return opts, nil
}

// SaveSettings writes the scalar option fields to a JSON settings file.
// Function-valued options are not persisted.
func SaveSettings(path string, opts Options) error {
	out := []byte("{}")
	var err error

	set := func(key string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, key, value)
	}

	if opts.DragSelector != "" {
		set(settingsDragSelector, opts.DragSelector)
	}
	if opts.DropSelector != "" {
		set(settingsDropSelector, opts.DropSelector)
	}
	if opts.HandleSelector != "" {
		set(settingsHandleSelector, opts.HandleSelector)
	}
	set(settingsAxis, opts.Axis.String())
	if opts.ThrottleInterval != 0 {
		set(settingsThrottleMs, opts.ThrottleInterval.Milliseconds())
	}
	if opts.Threshold != 0 {
		set(settingsThreshold, opts.Threshold)
	}
	if err != nil {
		return fmt.Errorf("drag: encode settings: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("drag: write settings: %w", err)
	}
	return nil
}
