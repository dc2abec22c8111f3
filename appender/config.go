package appender

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultTimeout is the connect and per-call timeout used when none is
// configured.
const DefaultTimeout = 1 * time.Second

// Config is used for appender configuration. It is validated once at
// activation and treated as immutable afterwards; reconfiguring means
// activating again.
type Config struct {
	// Verbose prints debugging information.
	Verbose bool `json:"verbose"`

	// Host is the remote server host. Required.
	Host string `json:"host"`

	// Port is the remote server port, in [1, 65535]. Required.
	Port int `json:"port"`

	// Timeout bounds connection establishment and each submission
	// round-trip. Zero means no timeout.
	Timeout time.Duration `json:"timeout"`

	// Category tags every submitted entry, identifying the log stream on
	// the receiving server. Required.
	Category string `json:"category"`

	// Encoding optionally names a text encoding (an IANA charset name)
	// applied to message bodies before submission. Empty means messages
	// are submitted as-is (UTF-8).
	Encoding string `json:"encoding"`
}

// DefaultConfig is the default appender configuration
var DefaultConfig = &Config{
	Host:     "127.0.0.1",
	Port:     1463,
	Timeout:  DefaultTimeout,
	Category: "default",
}

// Validate returns an error pointing to incorrect values for the
// configuration, if any.
func (c *Config) Validate() error {
	if c.Host == "" {
		return &Error{Code: ConfigError, Msg: "remote host is required"}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &Error{Code: ConfigError, Msg: fmt.Sprintf("remote port %d outside range [1, 65535]", c.Port)}
	}
	if c.Category == "" {
		return &Error{Code: ConfigError, Msg: "category is required"}
	}
	if c.Timeout < 0 {
		return &Error{Code: ConfigError, Msg: "timeout must be >= 0"}
	}
	if c.Encoding != "" {
		if _, err := htmlindex.Get(c.Encoding); err != nil {
			return &Error{Code: ConfigError, Msg: "unknown encoding " + strconv.Quote(c.Encoding), Err: err}
		}
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("%+v", *c)
}

// Hostport returns the host:port combination to connect to.
func (c *Config) Hostport() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// encoder returns the configured text encoder, or nil when messages pass
// through unchanged.
func (c *Config) encoder() (*encoding.Encoder, error) {
	if c.Encoding == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(c.Encoding)
	if err != nil {
		return nil, &Error{Code: ConfigError, Msg: "unknown encoding " + strconv.Quote(c.Encoding), Err: err}
	}
	return enc.NewEncoder(), nil
}

// DefaultTestConfig returns a testing configuration
func DefaultTestConfig(verbose bool) *Config {
	c := &Config{}
	*c = *DefaultConfig
	c.Verbose = verbose
	c.Timeout = 500 * time.Millisecond
	c.Category = "test"
	return c
}
