//go:build unit

package log

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"emperror.dev/errors"
	logrus "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_loggerIns_Configure(t *testing.T) {
	type args struct {
		level    string
		format   string
		filePath string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "Cannot parse log level",
			args: args{
				level: "fake",
			},
			wantErr: true,
		},
		{
			name: "Parse log level ok",
			args: args{
				level: "info",
			},
			wantErr: false,
		},
		{
			name: "Format json ok",
			args: args{
				level:  "info",
				format: "json",
			},
			wantErr: false,
		},
		{
			name: "Create log file",
			args: args{
				level:    "debug",
				format:   "json",
				filePath: filepath.Join(t.TempDir(), "dir", "http-listener.log"),
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ll := &loggerIns{
				FieldLogger: logrus.New(),
			}
			err := ll.Configure(tt.args.level, tt.args.format, tt.args.filePath)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_loggerIns_Configure_FieldLogger(t *testing.T) {
	ll := NewLogger().WithField("key", "value")

	assert.Error(t, ll.Configure("info", "json", ""))
}

func Test_loggerIns_WithError_Stack(t *testing.T) {
	buf := &bytes.Buffer{}
	lr := logrus.New()
	lr.SetOutput(buf)
	lr.SetFormatter(&logrus.JSONFormatter{})

	ll := &loggerIns{FieldLogger: lr}

	ll.Error(errors.New("boom"))

	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"stack":"`)
}

func TestLoggerContext(t *testing.T) {
	ll := NewLogger()

	ctx := SetLoggerInContext(context.TODO(), ll)

	assert.Equal(t, ll, GetLoggerFromContext(ctx))
	assert.Nil(t, GetLoggerFromContext(context.TODO()))
}
