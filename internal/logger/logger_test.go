package logger

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name      string
		ginMode   string
		level     string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "debug mode", ginMode: "debug", wantLevel: logrus.DebugLevel},
		{name: "release mode", ginMode: "release", wantLevel: logrus.InfoLevel, wantJSON: true},
		{name: "level override", ginMode: "release", level: "warn", wantLevel: logrus.WarnLevel, wantJSON: true},
		{name: "bad level ignored", ginMode: "debug", level: "loud", wantLevel: logrus.DebugLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GIN_MODE", tc.ginMode)
			if tc.level != "" {
				t.Setenv(LevelEnv, tc.level)
			}

			l := New(io.Discard)
			assert.Equal(t, tc.wantLevel, l.GetLevel())
			_, isJSON := l.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tc.wantJSON, isJSON)
		})
	}
}
