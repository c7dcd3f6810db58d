package service

import (
	"strings"
	"testing"

	"github.com/hxann/eduscore/internal/model"
)

type importFixture struct {
	*scoringFixture
	registrations  *fakeRegistrationRepo
	participations *fakeParticipationRepo
	svc            ImportService
}

func newImportFixture() *importFixture {
	scoring := newScoringFixture()
	registrations := newFakeRegistrationRepo()
	participations := newFakeParticipationRepo()
	return &importFixture{
		scoringFixture: scoring,
		registrations:  registrations,
		participations: participations,
		svc: NewImportService(
			scoring.users, scoring.activities, scoring.eval,
			registrations, participations, scoring.svc,
		),
	}
}

func (f *importFixture) addActivityCriteria(criteriaID, groupID, activityID uint) {
	id := activityID
	f.eval.criteria[criteriaID] = &model.EvaluationCriteria{
		ID: criteriaID, GroupID: groupID, Name: "attendance", ActivityID: &id,
	}
}

func (f *importFixture) register(studentID, activityID uint) {
	f.registrations.Create(&model.Registration{StudentID: studentID, ActivityID: activityID})
}

func TestImportScoresPartialFailure(t *testing.T) {
	f := newImportFixture()
	f.addStudent(1)
	f.addStudent(2)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addActivityCriteria(100, 1, 10)
	f.register(1, 10)
	// Student 2 never registered.

	csv := strings.Join([]string{
		"Student ID,Activity ID,Score,Attendance",
		"1,10,5,yes",   // row 2: ok
		"99,10,5,yes",  // row 3: unknown student
		"2,10,5,yes",   // row 4: not registered
		"1,10,abc,yes", // row 5: bad score
	}, "\n")

	result, err := f.svc.ImportScores(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportScores: %v", err)
	}

	if result.Processed != 4 {
		t.Errorf("processed = %d, want 4", result.Processed)
	}
	if result.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", result.Succeeded)
	}
	if len(result.Failed) != 3 {
		t.Fatalf("failed = %d, want 3", len(result.Failed))
	}
	wantRows := []int{3, 4, 5}
	for i, failure := range result.Failed {
		if failure.Row != wantRows[i] {
			t.Errorf("failure %d at row %d, want %d", i, failure.Row, wantRows[i])
		}
		if failure.Reason == "" {
			t.Errorf("failure %d has no reason", i)
		}
	}
	if result.BatchID == "" {
		t.Error("batch ID is empty")
	}

	// The good row went through the scoring unit.
	if got := f.users.users[1].TotalScore; got != 5 {
		t.Errorf("student 1 total = %v, want 5", got)
	}
	participation, err := f.participations.FindByStudentAndActivity(1, 10)
	if err != nil {
		t.Fatalf("participation not created: %v", err)
	}
	if !participation.IsCompleted {
		t.Error("non-empty attendance cell should mark the participation completed")
	}
}

func TestImportScoresBOMHeaderAndEmptyCells(t *testing.T) {
	f := newImportFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addActivityCriteria(100, 1, 10)
	f.register(1, 10)

	// Excel exports prefix the first header cell with a UTF-8 BOM. An empty
	// score defaults to 0 and an empty attendance cell leaves the
	// participation incomplete.
	csv := "\ufeffStudent ID,Activity ID,Score,Attendance\n1,10,,\n"

	result, err := f.svc.ImportScores(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportScores: %v", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("succeeded = %d, want 1 (failures: %v)", result.Succeeded, result.Failed)
	}

	participation, err := f.participations.FindByStudentAndActivity(1, 10)
	if err != nil {
		t.Fatalf("participation not created: %v", err)
	}
	if participation.IsCompleted {
		t.Error("empty attendance cell should not mark the participation completed")
	}
	if got := f.users.users[1].TotalScore; got != 0 {
		t.Errorf("student total = %v, want 0", got)
	}
}

func TestImportScoresFailedRowLeavesNoParticipation(t *testing.T) {
	f := newImportFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addActivityCriteria(100, 1, 10)
	f.register(1, 10)

	// The scoring transaction for the row rolls back; the row must leave no
	// participation behind, completed or otherwise.
	f.points.sumErr = errFakeDB

	result, err := f.svc.ImportScores(strings.NewReader(
		"Student ID,Activity ID,Score,Attendance\n1,10,5,yes\n"))
	if err != nil {
		t.Fatalf("ImportScores: %v", err)
	}
	if result.Succeeded != 0 || len(result.Failed) != 1 {
		t.Fatalf("succeeded = %d, failed = %d, want 0/1", result.Succeeded, len(result.Failed))
	}

	if _, err := f.participations.FindByStudentAndActivity(1, 10); err == nil {
		t.Error("failed row left a participation behind")
	}
}

func TestImportScoresRejectsUnusableHeader(t *testing.T) {
	f := newImportFixture()

	_, err := f.svc.ImportScores(strings.NewReader("Name,Points\nfoo,5\n"))
	if err == nil {
		t.Fatal("expected an error for a header without the required columns")
	}
}

func TestImportScoresActivityWithoutCriteria(t *testing.T) {
	f := newImportFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	// No criteria bound to activity 10.
	f.register(1, 10)

	result, err := f.svc.ImportScores(strings.NewReader("Student ID,Activity ID,Score\n1,10,5\n"))
	if err != nil {
		t.Fatalf("ImportScores: %v", err)
	}
	if result.Succeeded != 0 || len(result.Failed) != 1 {
		t.Fatalf("succeeded = %d, failed = %d, want 0/1", result.Succeeded, len(result.Failed))
	}
	if !strings.Contains(result.Failed[0].Reason, "no evaluation criteria") {
		t.Errorf("reason = %q, want mention of missing criteria", result.Failed[0].Reason)
	}
}
