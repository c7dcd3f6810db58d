package service

import (
	"errors"
	"math"
	"testing"

	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
)

type scoringFixture struct {
	users      *fakeUserRepo
	activities *fakeActivityRepo
	eval       *fakeEvalRepo
	points     *fakePointRepo
	txm        *fakeTxManager
	svc        ScoringService
}

func newScoringFixture() *scoringFixture {
	users := newFakeUserRepo()
	activities := newFakeActivityRepo()
	eval := newFakeEvalRepo()
	points := newFakePointRepo(eval)
	txm := &fakeTxManager{}
	return &scoringFixture{
		users:      users,
		activities: activities,
		eval:       eval,
		points:     points,
		txm:        txm,
		svc:        NewScoringService(users, activities, eval, points, txm),
	}
}

func (f *scoringFixture) addStudent(id uint) *model.User {
	user := &model.User{ID: id, Username: "student", Role: model.RoleStudent}
	f.users.users[id] = user
	return user
}

func (f *scoringFixture) addActivity(id uint) {
	f.activities.activities[id] = &model.Activity{ID: id, Title: "activity"}
}

func (f *scoringFixture) addGroup(id uint, name string, maxScore float64) *model.EvaluationGroup {
	group := &model.EvaluationGroup{ID: id, Name: name, MaxScore: maxScore}
	f.eval.groups[id] = group
	return group
}

func (f *scoringFixture) addCriteria(id, groupID uint) {
	f.eval.criteria[id] = &model.EvaluationCriteria{ID: id, GroupID: groupID, Name: "criteria"}
}

func record(t *testing.T, f *scoringFixture, studentID, activityID, criteriaID uint, score float64) *dto.DisciplinePointResponse {
	t.Helper()
	resp, err := f.svc.RecordScore(dto.RecordScoreRequest{
		StudentID:  studentID,
		ActivityID: activityID,
		CriteriaID: criteriaID,
		Score:      score,
	})
	if err != nil {
		t.Fatalf("RecordScore(%d, %d, %d, %v): %v", studentID, activityID, criteriaID, score, err)
	}
	return resp
}

func TestRecordScoreCreatesRowAndAggregates(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	resp := record(t, f, 1, 10, 100, 5)

	if resp.Score != 5 {
		t.Errorf("raw score = %v, want 5", resp.Score)
	}
	if resp.GroupTotalScore != 5 {
		t.Errorf("group subtotal = %v, want 5", resp.GroupTotalScore)
	}
	if resp.StudentTotalScore != 5 {
		t.Errorf("student total = %v, want 5", resp.StudentTotalScore)
	}
	if got := f.users.users[1].TotalScore; got != 5 {
		t.Errorf("persisted total = %v, want 5", got)
	}
}

func TestGroupSubtotalCappedAndSharedAcrossRows(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)
	f.addCriteria(101, 1)

	record(t, f, 1, 10, 100, 10)
	resp := record(t, f, 1, 10, 101, 8)

	// Raw 18 capped at 15, and the cache is identical on every row of the
	// (student, activity, group) combination.
	if resp.GroupTotalScore != 15 {
		t.Errorf("group subtotal = %v, want 15", resp.GroupTotalScore)
	}
	for _, row := range f.points.rows {
		if row.GroupTotalScore != 15 {
			t.Errorf("row %d cache = %v, want 15", row.ID, row.GroupTotalScore)
		}
	}
	if got := f.users.users[1].TotalScore; got != 15 {
		t.Errorf("student total = %v, want 15", got)
	}
}

func TestCorrectionOverwritesInsteadOfAdding(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	record(t, f, 1, 10, 100, 10)
	resp := record(t, f, 1, 10, 100, 4)

	if len(f.points.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(f.points.rows))
	}
	if resp.Score != 4 {
		t.Errorf("raw score after correction = %v, want 4", resp.Score)
	}
	if resp.StudentTotalScore != 4 {
		t.Errorf("student total = %v, want 4", resp.StudentTotalScore)
	}
}

func TestStudentTotalCapsPerGroupAcrossActivities(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addActivity(20)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	record(t, f, 1, 10, 100, 10)
	resp := record(t, f, 1, 20, 100, 10)

	// The per-activity caches hold their own sums, under the cap each.
	if resp.GroupTotalScore != 10 {
		t.Errorf("activity 20 subtotal = %v, want 10", resp.GroupTotalScore)
	}
	// The student total caps the group once across both activities:
	// min(10+10, 15).
	if resp.StudentTotalScore != 15 {
		t.Errorf("student total = %v, want 15", resp.StudentTotalScore)
	}
}

func TestTotalsSumIndependentlyCappedGroups(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addGroup(2, "Volunteering", 30)
	f.addCriteria(100, 1)
	f.addCriteria(200, 2)

	record(t, f, 1, 10, 100, 20) // capped at 15
	resp := record(t, f, 1, 10, 200, 25)

	if resp.StudentTotalScore != 40 {
		t.Errorf("student total = %v, want 40 (15 + 25)", resp.StudentTotalScore)
	}
}

func TestNegativeScoresAreNotFloored(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addActivity(20)
	f.addGroup(1, "Conduct", 20)
	f.addCriteria(100, 1)

	resp := record(t, f, 1, 10, 100, -5)
	if resp.GroupTotalScore != -5 {
		t.Errorf("subtotal = %v, want -5 (cap is an upper bound only)", resp.GroupTotalScore)
	}
	if resp.StudentTotalScore != -5 {
		t.Errorf("student total = %v, want -5", resp.StudentTotalScore)
	}

	resp = record(t, f, 1, 20, 100, 10)
	if resp.StudentTotalScore != 5 {
		t.Errorf("student total = %v, want 5 (min(-5+10, 20))", resp.StudentTotalScore)
	}
}

func TestNegativeCorrectionRecomputesGroupSubtotal(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 20)
	f.addCriteria(100, 1)
	f.addCriteria(101, 1)

	record(t, f, 1, 10, 100, 15)
	resp := record(t, f, 1, 10, 101, 10)
	if resp.GroupTotalScore != 20 {
		t.Fatalf("subtotal before correction = %v, want 20 (raw 25 capped)", resp.GroupTotalScore)
	}

	// Correcting the first row into negative territory rebuilds the subtotal
	// from the raw scores: min(-5+10, 20) = 5.
	resp = record(t, f, 1, 10, 100, -5)
	if resp.GroupTotalScore != 5 {
		t.Errorf("subtotal after correction = %v, want 5", resp.GroupTotalScore)
	}
	for _, row := range f.points.rows {
		if row.GroupTotalScore != 5 {
			t.Errorf("row %d cache = %v, want 5", row.ID, row.GroupTotalScore)
		}
	}
	if got := f.users.users[1].TotalScore; got != 5 {
		t.Errorf("student total = %v, want 5", got)
	}
}

func TestRecordScoreReadsCapInsideTransaction(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	group := f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	// A cap edit lands between the criteria lookup and the scoring
	// transaction; the aggregates must be built on the committed cap, not the
	// one embedded in the earlier criteria read.
	f.txm.before = func() { group.MaxScore = 10 }

	resp := record(t, f, 1, 10, 100, 12)
	if resp.GroupTotalScore != 10 {
		t.Errorf("subtotal = %v, want 10 (edited cap)", resp.GroupTotalScore)
	}
	if resp.StudentTotalScore != 10 {
		t.Errorf("student total = %v, want 10", resp.StudentTotalScore)
	}
	if resp.Criteria.Group.MaxScore != 10 {
		t.Errorf("response cap = %v, want 10", resp.Criteria.Group.MaxScore)
	}
}

func TestRecordScoreRejectsNonFiniteScore(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	for _, score := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := f.svc.RecordScore(dto.RecordScoreRequest{
			StudentID: 1, ActivityID: 10, CriteriaID: 100, Score: score,
		})
		var validation *apperr.ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("RecordScore(%v) error = %v, want ValidationError", score, err)
		}
	}
	if len(f.points.rows) != 0 {
		t.Errorf("rows = %d, want 0", len(f.points.rows))
	}
}

func TestRecordScoreUnknownReferences(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	cases := []struct {
		name string
		req  dto.RecordScoreRequest
	}{
		{"student", dto.RecordScoreRequest{StudentID: 99, ActivityID: 10, CriteriaID: 100}},
		{"activity", dto.RecordScoreRequest{StudentID: 1, ActivityID: 99, CriteriaID: 100}},
		{"criteria", dto.RecordScoreRequest{StudentID: 1, ActivityID: 10, CriteriaID: 99}},
	}
	for _, tc := range cases {
		_, err := f.svc.RecordScore(tc.req)
		var notFound *apperr.NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("unknown %s: error = %v, want NotFoundError", tc.name, err)
		}
	}
}

func TestAggregationFailureSurfacesAsAggregationError(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	f.points.sumErr = errFakeDB
	_, err := f.svc.RecordScore(dto.RecordScoreRequest{
		StudentID: 1, ActivityID: 10, CriteriaID: 100, Score: 5,
	})

	var aggregation *apperr.AggregationError
	if !errors.As(err, &aggregation) {
		t.Fatalf("error = %v, want AggregationError", err)
	}
	if aggregation.StudentID != 1 {
		t.Errorf("AggregationError.StudentID = %d, want 1", aggregation.StudentID)
	}
	if !errors.Is(err, errFakeDB) {
		t.Errorf("AggregationError should wrap the cause, got %v", err)
	}
}

func TestRecomputeStudentRepairsStaleCaches(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	record(t, f, 1, 10, 100, 12)

	// Corrupt the caches; a recompute must restore them from the raw scores.
	for _, row := range f.points.rows {
		row.GroupTotalScore = 999
	}
	f.users.users[1].TotalScore = 999

	total, err := f.svc.RecomputeStudent(1)
	if err != nil {
		t.Fatalf("RecomputeStudent: %v", err)
	}
	if total != 12 {
		t.Errorf("total = %v, want 12", total)
	}
	for _, row := range f.points.rows {
		if row.GroupTotalScore != 12 {
			t.Errorf("row cache = %v, want 12", row.GroupTotalScore)
		}
	}

	// Idempotent: a second run changes nothing.
	again, err := f.svc.RecomputeStudent(1)
	if err != nil {
		t.Fatalf("second RecomputeStudent: %v", err)
	}
	if again != total {
		t.Errorf("second recompute total = %v, want %v", again, total)
	}
}

func TestRecomputeGroupAppliesNewCap(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addStudent(2)
	f.addActivity(10)
	group := f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	record(t, f, 1, 10, 100, 12)
	record(t, f, 2, 10, 100, 8)

	group.MaxScore = 10
	touched, err := f.svc.RecomputeGroup(1)
	if err != nil {
		t.Fatalf("RecomputeGroup: %v", err)
	}
	if touched != 2 {
		t.Errorf("touched = %d, want 2", touched)
	}
	if got := f.users.users[1].TotalScore; got != 10 {
		t.Errorf("student 1 total = %v, want 10 (capped down)", got)
	}
	if got := f.users.users[2].TotalScore; got != 8 {
		t.Errorf("student 2 total = %v, want 8 (under the cap)", got)
	}
}

func TestRemoveCriteriaCascadesAndRecomputes(t *testing.T) {
	f := newScoringFixture()
	f.addStudent(1)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 20)
	f.addCriteria(100, 1)
	f.addCriteria(101, 1)

	record(t, f, 1, 10, 100, 8)
	record(t, f, 1, 10, 101, 6)

	if err := f.svc.RemoveCriteria(101); err != nil {
		t.Fatalf("RemoveCriteria: %v", err)
	}

	if _, ok := f.eval.criteria[101]; ok {
		t.Error("criteria 101 still in the registry")
	}
	if len(f.points.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(f.points.rows))
	}
	for _, row := range f.points.rows {
		if row.GroupTotalScore != 8 {
			t.Errorf("surviving row cache = %v, want 8", row.GroupTotalScore)
		}
	}
	if got := f.users.users[1].TotalScore; got != 8 {
		t.Errorf("student total = %v, want 8", got)
	}
}

func TestListPointsStudentSeesOnlyOwnRows(t *testing.T) {
	f := newScoringFixture()
	student := f.addStudent(1)
	f.addStudent(2)
	f.addActivity(10)
	f.addGroup(1, "Conduct", 15)
	f.addCriteria(100, 1)

	record(t, f, 1, 10, 100, 5)
	record(t, f, 2, 10, 100, 7)

	// The student asks for another student's rows; the filter is forced back
	// to their own ID.
	other := uint(2)
	page, err := f.svc.ListPoints(student, &other, 1, 20)
	if err != nil {
		t.Fatalf("ListPoints: %v", err)
	}
	items := page.Items.([]dto.DisciplinePointResponse)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].StudentID != 1 {
		t.Errorf("item student = %d, want 1", items[0].StudentID)
	}
}
