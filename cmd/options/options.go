package options

import (
	"fmt"
	"os"
	"strings"

	"github.com/viant/afs/url"
)

// Options represents command line options
type Options struct {
	ConfigURL string `short:"c" long:"conf" description:"crudly config URL (JSON or YAML)"`
	Port      int    `short:"p" long:"port" description:"overrides endpoint port"`
	LogLevel  string `short:"l" long:"log" description:"overrides log level: DEBUG, INFO, WARN, ERROR"`
	Version   bool   `short:"v" long:"version" description:"build version"`
}

// Init validates options and resolves config location
func (o *Options) Init() error {
	if o.Version {
		return nil
	}
	if o.ConfigURL == "" {
		return fmt.Errorf("config was empty")
	}
	o.ConfigURL = ensureAbsPath(o.ConfigURL)
	return nil
}

func ensureAbsPath(location string) string {
	location = expandHomeDir(location)
	if location == "" {
		return location
	}
	if !url.IsRelative(location) {
		return location
	}
	if wd, _ := os.Getwd(); wd != "" {
		return url.Join(wd, location)
	}
	return location
}

func expandHomeDir(location string) string {
	if strings.HasPrefix(location, "~") {
		location = strings.Replace(location, "~", os.Getenv("HOME"), 1)
	}
	return location
}
