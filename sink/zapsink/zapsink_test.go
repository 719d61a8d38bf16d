package zapsink

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/logbridge"
)

func newTestZap(buf *bytes.Buffer, lvl zapcore.Level) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:       "", // disable zap's own time; the sink injects "ts"
		LevelKey:      "level",
		MessageKey:    "message",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.RFC3339NanoTimeEncoder,
		EncodeCaller:  nil,
		StacktraceKey: "",
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(buf), lvl))
}

func TestSink_JSON_EmitsTSAndSource(t *testing.T) {
	var buf bytes.Buffer
	s := New(newTestZap(&buf, zapcore.DebugLevel), Options{})

	at := time.Date(2024, 12, 31, 23, 59, 59, 123000000, time.UTC)
	s.Callback()(logbridge.NewLogEvent("/src/core/lib/channel.cc", 42, logbridge.SeverityError, "connect failed", at))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("json unmarshal: %v; line=%s", err, buf.String())
	}
	if m["level"] != "error" {
		t.Fatalf("level mismatch: %v", m["level"])
	}
	if m["message"] != "connect failed" {
		t.Fatalf("message mismatch: %v", m["message"])
	}
	if got, want := m["ts"], at.Format(time.RFC3339Nano); got != want {
		t.Fatalf("ts mismatch: got %v want %q", got, want)
	}
	if m["file"] != "channel.cc" {
		t.Fatalf("file mismatch: %v", m["file"])
	}
	if m["line"] != float64(42) {
		t.Fatalf("line mismatch: %v", m["line"])
	}
}

func TestSink_FullPath(t *testing.T) {
	var buf bytes.Buffer
	s := New(newTestZap(&buf, zapcore.DebugLevel), Options{FullPath: true, TimestampKey: "at"})

	s.Consume(logbridge.NewLogEvent("/src/core/lib/channel.cc", 1, logbridge.SeverityInfo, "x", time.Unix(0, 0)))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if m["file"] != "/src/core/lib/channel.cc" {
		t.Fatalf("file mismatch: %v", m["file"])
	}
	if _, ok := m["at"]; !ok {
		t.Fatalf("custom timestamp key missing: %v", m)
	}
}

func TestSink_DisabledLevelWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	s := New(newTestZap(&buf, zapcore.ErrorLevel), Options{})

	s.Consume(logbridge.NewLogEvent("a.cc", 1, logbridge.SeverityDebug, "noise", time.Unix(0, 0)))
	s.Consume(logbridge.NewLogEvent("a.cc", 2, logbridge.SeverityInfo, "noise", time.Unix(0, 0)))

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestNewJSON_AtomicLevel(t *testing.T) {
	var buf bytes.Buffer
	s, al := NewJSON(zapcore.AddSync(&buf), logbridge.SeverityError)

	s.Consume(logbridge.NewLogEvent("a.cc", 1, logbridge.SeverityInfo, "hidden", time.Unix(0, 0)))
	if buf.Len() != 0 {
		t.Fatalf("info written below error threshold: %q", buf.String())
	}

	al.SetLevel(zapcore.InfoLevel)
	s.Consume(logbridge.NewLogEvent("a.cc", 2, logbridge.SeverityInfo, "shown", time.Unix(0, 0)))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("json unmarshal: %v; line=%s", err, buf.String())
	}
	if m["message"] != "shown" {
		t.Fatalf("message mismatch: %v", m["message"])
	}
}

func TestNew_NilLoggerIsNop(t *testing.T) {
	s := New(nil, Options{})
	s.Consume(logbridge.NewLogEvent("a.cc", 1, logbridge.SeverityError, "dropped", time.Unix(0, 0)))
}
