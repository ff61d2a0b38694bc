package sectorfs

import "github.com/mwantia/sectorfs/log"

type Options struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	IndexResource string
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		LogLevel: log.Info,
	}
}

func WithLogLevel(logLevel log.LogLevel) Option {
	return func(opts *Options) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithLogFile(logFile string) Option {
	return func(opts *Options) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithoutTerminalLog() Option {
	return func(opts *Options) error {
		opts.NoTerminalLog = true
		return nil
	}
}

// WithIndexResource overrides the name of the index resource on the
// medium (default "index.txt").
func WithIndexResource(resource string) Option {
	return func(opts *Options) error {
		opts.IndexResource = resource
		return nil
	}
}
