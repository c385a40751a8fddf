package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", "json", &buf)

	Log.WithField("location", "gym").Debug("travelled")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "travelled" || line["location"] != "gym" {
		t.Errorf("Unexpected log line: %v", line)
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init("loud", "text", &buf)

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level, got %v", Log.GetLevel())
	}
	Log.Debug("hidden")
	Log.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("Unexpected output: %q", buf.String())
	}
}
