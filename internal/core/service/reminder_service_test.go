package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/task-manager/internal/core/domain"
)

type recordingNotifier struct {
	delivered []string
	err       error
}

func (n *recordingNotifier) Notify(_ context.Context, task *domain.Task) error {
	if n.err != nil {
		return n.err
	}
	n.delivered = append(n.delivered, task.ID)
	return nil
}

var reminderNow = time.Date(2021, 9, 20, 21, 0, 0, 0, time.UTC)

func seedReminderTasks(repo *stubTaskRepo) {
	repo.tasks["due"] = &domain.Task{ID: "due", CreatedBy: "u1", ReminderTime: reminderNow.Add(-time.Minute)}
	repo.tasks["future"] = &domain.Task{ID: "future", CreatedBy: "u1", ReminderTime: reminderNow.Add(time.Hour)}
	repo.tasks["done"] = &domain.Task{ID: "done", CreatedBy: "u1", ReminderTime: reminderNow.Add(-time.Hour), IsCompleted: true}
	reminded := reminderNow.Add(-time.Second)
	repo.tasks["sent"] = &domain.Task{ID: "sent", CreatedBy: "u2", ReminderTime: reminderNow.Add(-time.Hour), RemindedAt: &reminded}
}

func newTestReminderService(repo *stubTaskRepo, n *recordingNotifier, batch int) *reminderService {
	svc := NewReminderService(repo, n, batch, discardLogger).(*reminderService)
	svc.now = func() time.Time { return reminderNow }
	return svc
}

func TestReminderService_Scan_OnlyDue(t *testing.T) {
	repo := newStubTaskRepo()
	seedReminderTasks(repo)
	svc := newTestReminderService(repo, &recordingNotifier{}, 10)

	due, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 || due[0].ID != "due" {
		t.Fatalf("expected only the due task, got %+v", due)
	}
}

func TestReminderService_Scan_RespectsBatch(t *testing.T) {
	repo := newStubTaskRepo()
	for _, id := range []string{"a", "b", "c"} {
		repo.tasks[id] = &domain.Task{ID: id, CreatedBy: "u1", ReminderTime: reminderNow.Add(-time.Minute)}
	}
	svc := newTestReminderService(repo, &recordingNotifier{}, 2)

	due, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(due))
	}
}

func TestReminderService_Scan_RepoError(t *testing.T) {
	repo := newStubTaskRepo()
	repo.findErr = errors.New("server selection timeout")
	svc := newTestReminderService(repo, &recordingNotifier{}, 10)

	if _, err := svc.Scan(context.Background()); !errors.Is(err, repo.findErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestReminderService_Deliver_MarksReminded(t *testing.T) {
	repo := newStubTaskRepo()
	seedReminderTasks(repo)
	n := &recordingNotifier{}
	svc := newTestReminderService(repo, n, 10)

	if err := svc.Deliver(context.Background(), repo.tasks["due"]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.delivered) != 1 || n.delivered[0] != "due" {
		t.Fatalf("expected notification for due, got %v", n.delivered)
	}
	if repo.tasks["due"].RemindedAt == nil {
		t.Fatal("expected reminded marker to be set")
	}

	due, _ := svc.Scan(context.Background())
	if len(due) != 0 {
		t.Fatalf("delivered reminder must not be due again, got %d", len(due))
	}
}

func TestReminderService_Deliver_NotifyFailureLeavesTaskDue(t *testing.T) {
	repo := newStubTaskRepo()
	seedReminderTasks(repo)
	n := &recordingNotifier{err: errors.New("smtp unavailable")}
	svc := newTestReminderService(repo, n, 10)

	if err := svc.Deliver(context.Background(), repo.tasks["due"]); !errors.Is(err, n.err) {
		t.Fatalf("expected notifier error, got %v", err)
	}
	if repo.markCalls != 0 {
		t.Fatalf("task must not be marked when notification failed")
	}

	due, _ := svc.Scan(context.Background())
	if len(due) != 1 {
		t.Fatalf("expected task to stay due for retry, got %d", len(due))
	}
}

func TestReminderService_Deliver_MarkFailure(t *testing.T) {
	repo := newStubTaskRepo()
	seedReminderTasks(repo)
	repo.markErr = errors.New("write conflict")
	svc := newTestReminderService(repo, &recordingNotifier{}, 10)

	if err := svc.Deliver(context.Background(), repo.tasks["due"]); !errors.Is(err, repo.markErr) {
		t.Fatalf("expected mark error, got %v", err)
	}
}
