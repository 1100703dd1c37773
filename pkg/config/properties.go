package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

const propertiesPrefix = "rle."

// ImportProperties reads a Java style properties file into a profile called
// name. Recognized keys are rle.input-mode, rle.output, rle.max-decoded-size,
// rle.log-level and rle.log-format.
func ImportProperties(path, name string) (*Profile, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}

	profile := &Profile{Name: name}
	var unknown []string
	for _, key := range p.Keys() {
		if !strings.HasPrefix(key, propertiesPrefix) {
			continue
		}
		value, _ := p.Get(key)
		switch strings.TrimPrefix(key, propertiesPrefix) {
		case "input-mode":
			profile.InputMode = value
		case "output":
			profile.Output = value
		case "max-decoded-size":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, value)
			}
			profile.MaxDecodedSize = n
		case "log-level":
			profile.LogLevel = value
		case "log-format":
			profile.LogFormat = value
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown properties: %s", strings.Join(unknown, ", "))
	}
	return profile, nil
}
