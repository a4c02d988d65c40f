package fiberlog

import "github.com/sirupsen/logrus"

// Config controls which request attributes the middleware logs and where.
// A nil Logger falls back to the logrus standard logger.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
