package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
)

func TestLogNotifier_WritesReminderLine(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	task := &domain.Task{
		ID:           "t1",
		Title:        "pay rent",
		CreatedBy:    "u1",
		ReminderTime: time.Date(2021, 9, 20, 20, 23, 12, 0, time.UTC),
	}
	if err := n.Notify(context.Background(), task); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["task_id"] != "t1" || line["user_id"] != "u1" || line["title"] != "pay rent" {
		t.Fatalf("unexpected log fields: %v", line)
	}
	if line["message"] != "task reminder" {
		t.Fatalf("unexpected message: %v", line["message"])
	}
}
