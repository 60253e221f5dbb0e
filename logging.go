package powerlink

import "github.com/sirupsen/logrus"

// NewLogger returns a component-scoped logger built on the package-level
// default logrus instance.
func NewLogger(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
