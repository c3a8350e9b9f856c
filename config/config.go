package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/viant/crudly/handler"
	"github.com/viant/crudly/logging"
	"github.com/viant/crudly/router"
	"github.com/viant/toolbox"
)

const (
	DefaultPort           = 8080
	DefaultMetricURI      = "/v1/api/metric/"
	DefaultReadTimeoutMs  = 60000
	DefaultWriteTimeoutMs = 60000
	DefaultMaxHeaderBytes = 1 << 20

	//PortEnv overrides configured endpoint port
	PortEnv = "CRUDLY_PORT"
	//LogLevelEnv overrides configured log level
	LogLevelEnv = "CRUDLY_LOG_LEVEL"
)

type (
	//Config defines standalone server config
	Config struct {
		URL       string `json:"-"`
		Version   string `json:",omitempty"`
		EnvURL    string `json:",omitempty"`
		APIPrefix string `json:",omitempty"` //like /v1/api
		MetricURI string `json:",omitempty"`
		LogLevel  string `json:",omitempty"`
		Endpoint  Endpoint
		Connector *Connector
		Cors      *router.Cors                    `json:",omitempty"`
		Routes    []*router.Route                 `json:",omitempty"`
		Entities  map[string]handler.GroupOptions `json:",omitempty"`
		Customs   []*Custom                       `json:",omitempty"`
	}

	//Endpoint defines HTTP server settings
	Endpoint struct {
		Port           int
		ReadTimeoutMs  int `json:",omitempty"`
		WriteTimeoutMs int `json:",omitempty"`
		MaxHeaderBytes int `json:",omitempty"`
	}

	//Custom defines an aliased group exposed under Name and backed by Entity
	Custom struct {
		Name    string
		Entity  string
		Options handler.GroupOptions `json:",omitempty"`
	}
)

// Init applies defaults and environment overrides
func (c *Config) Init() {
	if value := os.Getenv(PortEnv); value != "" {
		c.Endpoint.Port = toolbox.AsInt(value)
	}
	if value := os.Getenv(LogLevelEnv); value != "" {
		c.LogLevel = value
	}
	c.Endpoint.Init()
	if c.MetricURI == "" {
		c.MetricURI = DefaultMetricURI
	}
	if c.LogLevel == "" {
		c.LogLevel = logging.INFO
	}
	c.LogLevel = strings.ToUpper(c.LogLevel)
	c.APIPrefix = strings.TrimRight(c.APIPrefix, "/")
	if c.Connector != nil {
		c.Connector.Init()
	}
}

// Validate checks config
func (c *Config) Validate() error {
	if c.Connector == nil {
		return fmt.Errorf("connector was empty")
	}
	if err := c.Connector.Validate(); err != nil {
		return err
	}
	if len(c.Routes) == 0 {
		return fmt.Errorf("routes were empty")
	}
	switch c.LogLevel {
	case logging.DEBUG, logging.INFO, logging.WARN, logging.ERROR:
	default:
		return fmt.Errorf("unsupported log level: %v", c.LogLevel)
	}
	for i, custom := range c.Customs {
		if custom.Name == "" || custom.Entity == "" {
			return fmt.Errorf("custom[%v]: name and entity are required", i)
		}
		if custom.Name == custom.Entity {
			return fmt.Errorf("custom %v: name has to differ from entity", custom.Name)
		}
	}
	return nil
}

// Init applies endpoint defaults
func (e *Endpoint) Init() {
	if e.Port == 0 {
		e.Port = DefaultPort
	}
	if e.ReadTimeoutMs == 0 {
		e.ReadTimeoutMs = DefaultReadTimeoutMs
	}
	if e.WriteTimeoutMs == 0 {
		e.WriteTimeoutMs = DefaultWriteTimeoutMs
	}
	if e.MaxHeaderBytes == 0 {
		e.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
}
