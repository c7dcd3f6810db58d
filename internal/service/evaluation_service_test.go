package service

import (
	"errors"
	"testing"

	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
)

func newEvaluationFixture() (*scoringFixture, EvaluationService) {
	f := newScoringFixture()
	return f, NewEvaluationService(f.eval, f.activities, f.svc)
}

func TestUpdateGroupCapChangeRecomputesEagerly(t *testing.T) {
	f, svc := newEvaluationFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)
	record(t, f, 1, 10, 100, 12)

	newCap := 10.0
	resp, err := svc.UpdateGroup(1, dto.UpdateGroupRequest{MaxScore: &newCap})
	if err != nil {
		t.Fatalf("UpdateGroup: %v", err)
	}
	if resp.MaxScore != 10 {
		t.Errorf("max score = %v, want 10", resp.MaxScore)
	}

	// The stale aggregates built on cap 15 were rebuilt under the new cap.
	if got := f.users.users[1].TotalScore; got != 10 {
		t.Errorf("student total = %v, want 10", got)
	}
	for _, row := range f.points.rows {
		if row.GroupTotalScore != 10 {
			t.Errorf("row cache = %v, want 10", row.GroupTotalScore)
		}
	}
}

func TestUpdateGroupNameOnlySkipsRecompute(t *testing.T) {
	f, svc := newEvaluationFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)
	record(t, f, 1, 10, 100, 12)

	// A failing ledger would make any recompute blow up; a rename must not
	// touch it.
	f.points.sumErr = errFakeDB

	name := "General Conduct"
	if _, err := svc.UpdateGroup(1, dto.UpdateGroupRequest{Name: &name}); err != nil {
		t.Fatalf("UpdateGroup: %v", err)
	}
	if got := f.eval.groups[1].Name; got != "General Conduct" {
		t.Errorf("name = %q, want %q", got, "General Conduct")
	}
}

func TestCreateCriteriaUnknownGroup(t *testing.T) {
	_, svc := newEvaluationFixture()

	_, err := svc.CreateCriteria(dto.CreateCriteriaRequest{GroupID: 99, Name: "x"})
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestDeleteCriteriaUnknownID(t *testing.T) {
	_, svc := newEvaluationFixture()

	err := svc.DeleteCriteria(99)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}
