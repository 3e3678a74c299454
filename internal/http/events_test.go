package http

import (
	"testing"

	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/realtime"
)

func TestVisibleTo_TargetedEventsStayPrivate(t *testing.T) {
	alice := model.Actor{ID: "alice", Role: constants.RoleWorker}
	bob := model.Actor{ID: "bob", Role: constants.RoleWorker}

	broadcast := realtime.Event{Type: realtime.EventTaskUpdated, TaskID: "t1", Status: constants.StatusInProgress}
	forAlice := realtime.Event{Type: realtime.EventNotification, TaskID: "t1", UserID: "alice"}

	if !visibleTo(alice, broadcast) || !visibleTo(bob, broadcast) {
		t.Error("task change events should reach every stream")
	}
	if !visibleTo(alice, forAlice) {
		t.Error("a notification should reach its target")
	}
	if visibleTo(bob, forAlice) {
		t.Error("a notification leaked to another user's stream")
	}
}
