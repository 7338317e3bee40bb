package utillog

import "github.com/sirupsen/logrus"

// Log func used by util packages, can be replaced by the app.
var (
	DebugLog func(pat string, args ...any) = logrus.Debugf
)
