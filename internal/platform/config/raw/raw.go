// Package raw is the logging-free env reader used while bootstrapping.
// The full config package logs on bad values and therefore cannot be used
// before the logger itself is configured
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over environment variables ("LOG_", "OFF_", ...)
type Conf struct{ prefix string }

// New returns a root Conf without a prefix
func New() Conf { return Conf{} }

// Prefix derives a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(c.prefix + key))
}

// Get returns the trimmed env value or def when unset/empty
func (c Conf) Get(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1/true/yes/on (case insensitive), def otherwise
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.lookup(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// GetInt parses a non-negative integer, falling back to def on junk
func (c Conf) GetInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
