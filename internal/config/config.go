package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Feed settings
	FeedFiles []string
	Timezone  string

	// Display settings
	ZoomDays   int // width of the visible timeline window in days
	TimeFormat string
	DateFormat string

	// Filter/sort settings
	CustomOrder []string            // network-state priority order for sorting
	Aliases     map[string][]string // canonical name -> variant spellings

	// UI settings
	Colors      map[string]string
	StartupView string

	// Behavior settings
	AutoRefresh bool
	RefreshRate time.Duration
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		FeedFiles: []string{filepath.Join(home, ".nscal", "events.json")},

		ZoomDays:   7,
		TimeFormat: "15:04",
		DateFormat: "Jan 2, 2006",

		Aliases: map[string][]string{},

		Colors: map[string]string{
			"normal":   "252",
			"live":     "196",
			"next":     "220",
			"selected": "reverse",
			"header":   "bold",
			"help":     "241",
		},

		StartupView: "timeline",
		AutoRefresh: true,
		RefreshRate: 60 * time.Second,
	}
}

// Location resolves the configured timezone, falling back to local time
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	// Try multiple config file locations
	configPaths := []string{
		os.Getenv("NSCAL_CONFIG"),
		filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "nscal", "nscalrc"),
		filepath.Join(os.Getenv("HOME"), ".config", "nscal", "nscalrc"),
		filepath.Join(os.Getenv("HOME"), ".nscalrc"),
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
	aliasRe = regexp.MustCompile(`^alias\s+"([^"]+)"\s+(.+)$`)
)

func (c *Config) parseLine(line string) error {
	// Handle set commands: set variable value
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// Handle color commands: color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = matches[2]
		return nil
	}

	// Handle alias commands: alias "Canonical Name" variant1,variant2
	if matches := aliasRe.FindStringSubmatch(line); matches != nil {
		canonical := matches[1]
		c.Aliases[canonical] = append(c.Aliases[canonical], splitList(matches[2])...)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "feed_file", "feed_files":
		files := splitList(value)
		for i, file := range files {
			// Expand ~ to home directory
			if strings.HasPrefix(file, "~/") {
				home, _ := os.UserHomeDir()
				files[i] = filepath.Join(home, file[2:])
			}
		}
		c.FeedFiles = files

	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone: %s", value)
		}
		c.Timezone = value

	case "zoom_days":
		days, err := strconv.Atoi(value)
		if err != nil || days < 1 {
			return fmt.Errorf("invalid zoom_days: %s", value)
		}
		c.ZoomDays = days

	case "time_format":
		c.TimeFormat = value

	case "date_format":
		c.DateFormat = value

	case "custom_order":
		c.CustomOrder = splitList(value)

	case "startup_view":
		switch value {
		case "timeline", "popups", "agenda":
			c.StartupView = value
		default:
			return fmt.Errorf("invalid startup_view: %s", value)
		}

	case "auto_refresh":
		c.AutoRefresh = strings.ToLower(value) == "true" || value == "1"

	case "refresh_rate":
		rate, err := time.ParseDuration(value)
		if err != nil {
			// Try parsing as seconds
			if seconds, err2 := strconv.Atoi(value); err2 == nil {
				rate = time.Duration(seconds) * time.Second
			} else {
				return fmt.Errorf("invalid refresh_rate: %s", value)
			}
		}
		c.RefreshRate = rate

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
