package xlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

type testBanner struct{}

func (testBanner) JSON() string      { return "xtree-json" }
func (testBanner) PlainText() string { return "xtree-text" }

func newMemLogger(t *testing.T, opts ...XLoggerOption) (XLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	opts = append([]XLoggerOption{WithXLoggerWriteSyncer(zapcore.AddSync(buf))}, opts...)
	return NewXLogger(opts...), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	res := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		res = append(res, m)
	}
	return res
}

func TestXLogger_JSON(t *testing.T) {
	logger, buf := newMemLogger(t,
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerEncoder(JSON),
	)
	logger.Debug("debug msg", zap.Int("height", 3))
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error(errors.New("boom"), "error msg")
	logger.Logf(zapcore.InfoLevel, "len %d", 11)
	require.NoError(t, logger.Sync())

	lines := decodeLines(t, buf)
	require.Len(t, lines, 5)
	require.Equal(t, "DEBUG", lines[0]["lvl"])
	require.Equal(t, "debug msg", lines[0]["msg"])
	require.Equal(t, float64(3), lines[0]["height"])
	require.Contains(t, lines[0]["callAt"], "zap_test.go")
	require.Equal(t, "WARN", lines[2]["lvl"])
	require.Equal(t, "boom", lines[3]["error"])
	require.Equal(t, "len 11", lines[4]["msg"])
}

func TestXLogger_Level(t *testing.T) {
	testcases := []struct {
		name  string
		level LogLevel
		lines int
	}{
		{name: "debug", level: LogLevelDebug, lines: 4},
		{name: "info", level: LogLevelInfo, lines: 3},
		{name: "warn", level: LogLevelWarn, lines: 2},
		{name: "error", level: LogLevelError, lines: 1},
		{name: "lower case", level: "warn", lines: 2},
		{name: "unknown", level: "verbose", lines: 4},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			logger, buf := newMemLogger(tt, WithXLoggerLevel(tc.level))
			logger.Debug("1")
			logger.Info("2")
			logger.Warn("3")
			logger.Error(nil, "4")
			require.Len(tt, decodeLines(tt, buf), tc.lines)
		})
	}
}

func TestXLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("XLOG_LVL", "ERROR")
	logger, buf := newMemLogger(t)
	logger.Warn("dropped")
	logger.Error(errors.New("kept"), "kept")
	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Equal(t, "kept", lines[0]["msg"])
}

func TestXLogger_IncreaseLogLevel(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerLevel(LogLevelDebug))
	logger.IncreaseLogLevel(zapcore.WarnLevel)
	logger.Info("dropped")
	logger.Warn("kept")
	require.Len(t, decodeLines(t, buf), 1)
}

func TestXLogger_ErrorStack(t *testing.T) {
	logger, buf := newMemLogger(t)
	v := infra.NewViolation("[tree] broken")
	logger.ErrorStack(fmt.Errorf("validate: %w", v), "invariant")
	logger.ErrorStack(errors.New("plain"), "no frame")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	require.Equal(t, "validate: [tree] broken", lines[0]["error"])
	require.Contains(t, lines[0]["frame"], "TestXLogger_ErrorStack")
	require.Contains(t, lines[0]["frame"], "zap_test.go:")
	require.NotContains(t, lines[1], "frame")
}

func TestXLogger_Banner(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerEncoder(JSON))
	logger.Banner(testBanner{})
	logger.Banner(testBanner{})
	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Equal(t, map[string]any{"banner": "xtree-json"}, lines[0])

	logger, buf = newMemLogger(t, WithXLoggerEncoder(PlainText))
	logger.Banner(testBanner{})
	require.Equal(t, "xtree-text", strings.TrimSpace(buf.String()))
}

func TestXLogger_Zap(t *testing.T) {
	logger, buf := newMemLogger(t, WithXLoggerEncoder(JSON))
	logger.Zap().Named("avl").Info("from zap")
	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Equal(t, "avl", lines[0]["component"])
	require.Contains(t, lines[0]["callAt"], "zap_test.go")
}

func TestXLogger_InvalidOptions(t *testing.T) {
	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriter(_writerMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriteSyncer(nil))
	})
	require.NotPanics(t, func() {
		NewXLogger(
			WithXLoggerWriter(StdErr),
			WithXLoggerLevelEncoder(nil),
			WithXLoggerTimeEncoder(nil),
			WithXLoggerConsoleCore(),
		)
	})
}

func TestParseEncoder(t *testing.T) {
	for name, expected := range map[string]LogEncoderType{
		"json": JSON, "JSON": JSON, "": JSON, "text": PlainText, "Plain": PlainText,
	} {
		enc, err := ParseEncoder(name)
		require.NoError(t, err)
		require.Equal(t, expected, enc)
	}
	_, err := ParseEncoder("yaml")
	require.Error(t, err)
}
