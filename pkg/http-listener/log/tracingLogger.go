package log

type jaegerLogger struct {
	logger Logger
}

func (jl *jaegerLogger) Error(msg string) {
	jl.logger.Error(msg)
}

func (jl *jaegerLogger) Infof(msg string, args ...interface{}) {
	jl.logger.Infof(msg, args...)
}

// Span logs are only interesting while debugging.
func (jl *jaegerLogger) Debugf(msg string, args ...interface{}) {
	jl.logger.Debugf(msg, args...)
}
