package service

import (
	"errors"
	"sort"

	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. WithTx returns the fake itself and the fake
// transaction manager runs the callback with a nil handle, so service logic
// runs against plain maps.

type fakeTxManager struct {
	err    error  // injected failure, returned instead of running the callback
	before func() // runs before the callback, simulating a concurrent write
}

func (m *fakeTxManager) Do(fn func(tx *gorm.DB) error) error {
	if m.err != nil {
		return m.err
	}
	if m.before != nil {
		m.before()
	}
	return fn(nil)
}

// --- users ---

type fakeUserRepo struct {
	users      map[uint]*model.User
	classStats []repository.ClassScoreStat
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User)}
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByRole(role string) ([]model.User, error) {
	var out []model.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindStaffByDepartment(departmentID uint) ([]model.User, error) {
	var out []model.User
	for _, user := range r.users {
		if user.Role == model.RoleStaff && user.DepartmentID != nil && *user.DepartmentID == departmentID {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindStudentsByClass(classID *uint) ([]model.User, error) {
	var out []model.User
	for _, user := range r.users {
		if user.Role != model.RoleStudent {
			continue
		}
		if classID != nil && (user.ClassID == nil || *user.ClassID != *classID) {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateTotalScore(userID uint, total float64) error {
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.TotalScore = total
	return nil
}

func (r *fakeUserRepo) ClassScoreStats(classID *uint) ([]repository.ClassScoreStat, error) {
	return r.classStats, nil
}

// --- activities ---

type fakeActivityRepo struct {
	activities map[uint]*model.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[uint]*model.Activity)}
}

func (r *fakeActivityRepo) Create(activity *model.Activity) error {
	if activity.ID == 0 {
		activity.ID = uint(len(r.activities) + 1)
	}
	r.activities[activity.ID] = activity
	return nil
}

func (r *fakeActivityRepo) Update(activity *model.Activity) error {
	r.activities[activity.ID] = activity
	return nil
}

func (r *fakeActivityRepo) FindByID(id uint) (*model.Activity, error) {
	activity, ok := r.activities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return activity, nil
}

func (r *fakeActivityRepo) FindAll(filter repository.ActivityFilter, offset, limit int) ([]model.Activity, int64, error) {
	var out []model.Activity
	for _, activity := range r.activities {
		out = append(out, *activity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeActivityRepo) Delete(id uint) error {
	delete(r.activities, id)
	return nil
}

func (r *fakeActivityRepo) FindAllCategories() ([]model.Category, error) { return nil, nil }

func (r *fakeActivityRepo) FindOrCreateTag(name string) (*model.Tag, error) {
	return &model.Tag{Name: name}, nil
}

// --- evaluation registry ---

type fakeEvalRepo struct {
	groups   map[uint]*model.EvaluationGroup
	criteria map[uint]*model.EvaluationCriteria
}

func newFakeEvalRepo() *fakeEvalRepo {
	return &fakeEvalRepo{
		groups:   make(map[uint]*model.EvaluationGroup),
		criteria: make(map[uint]*model.EvaluationCriteria),
	}
}

func (r *fakeEvalRepo) WithTx(tx *gorm.DB) repository.EvaluationRepository { return r }

func (r *fakeEvalRepo) CreateGroup(group *model.EvaluationGroup) error {
	if group.ID == 0 {
		group.ID = uint(len(r.groups) + 1)
	}
	r.groups[group.ID] = group
	return nil
}

func (r *fakeEvalRepo) UpdateGroup(group *model.EvaluationGroup) error {
	r.groups[group.ID] = group
	return nil
}

func (r *fakeEvalRepo) FindGroupByID(id uint) (*model.EvaluationGroup, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return group, nil
}

func (r *fakeEvalRepo) FindAllGroups() ([]model.EvaluationGroup, error) {
	var out []model.EvaluationGroup
	for _, group := range r.groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeEvalRepo) CreateCriteria(criteria *model.EvaluationCriteria) error {
	if criteria.ID == 0 {
		criteria.ID = uint(len(r.criteria) + 1)
	}
	r.criteria[criteria.ID] = criteria
	return nil
}

func (r *fakeEvalRepo) FindCriteriaByID(id uint) (*model.EvaluationCriteria, error) {
	criteria, ok := r.criteria[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *criteria
	if group, ok := r.groups[criteria.GroupID]; ok {
		out.Group = *group
	}
	return &out, nil
}

func (r *fakeEvalRepo) FindAllCriteria(groupID *uint) ([]model.EvaluationCriteria, error) {
	var out []model.EvaluationCriteria
	for _, criteria := range r.criteria {
		if groupID != nil && criteria.GroupID != *groupID {
			continue
		}
		withGroup, _ := r.FindCriteriaByID(criteria.ID)
		out = append(out, *withGroup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeEvalRepo) FindFirstCriteriaByActivity(activityID uint) (*model.EvaluationCriteria, error) {
	var best *model.EvaluationCriteria
	for _, criteria := range r.criteria {
		if criteria.ActivityID == nil || *criteria.ActivityID != activityID {
			continue
		}
		if best == nil || criteria.ID < best.ID {
			best = criteria
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindCriteriaByID(best.ID)
}

func (r *fakeEvalRepo) DeleteCriteria(id uint) error {
	delete(r.criteria, id)
	return nil
}

// --- discipline point ledger ---

type fakePointRepo struct {
	eval   *fakeEvalRepo
	rows   map[uint]*model.DisciplinePoint
	nextID uint

	sumErr error // injected failure for the aggregation queries
}

func newFakePointRepo(eval *fakeEvalRepo) *fakePointRepo {
	return &fakePointRepo{eval: eval, rows: make(map[uint]*model.DisciplinePoint), nextID: 1}
}

func (r *fakePointRepo) WithTx(tx *gorm.DB) repository.DisciplinePointRepository { return r }

func (r *fakePointRepo) groupOf(criteriaID uint) uint {
	if criteria, ok := r.eval.criteria[criteriaID]; ok {
		return criteria.GroupID
	}
	return 0
}

func (r *fakePointRepo) Create(point *model.DisciplinePoint) error {
	point.ID = r.nextID
	r.nextID++
	r.rows[point.ID] = point
	return nil
}

func (r *fakePointRepo) Save(point *model.DisciplinePoint) error {
	r.rows[point.ID] = point
	return nil
}

func (r *fakePointRepo) FindByID(id uint) (*model.DisciplinePoint, error) {
	point, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return point, nil
}

func (r *fakePointRepo) FindByTriple(studentID, activityID, criteriaID uint) (*model.DisciplinePoint, error) {
	for _, point := range r.rows {
		if point.StudentID == studentID && point.ActivityID == activityID && point.CriteriaID == criteriaID {
			return point, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePointRepo) FindAll(studentID *uint, offset, limit int) ([]model.DisciplinePoint, int64, error) {
	var out []model.DisciplinePoint
	for _, point := range r.rows {
		if studentID != nil && point.StudentID != *studentID {
			continue
		}
		row := *point
		if criteria, err := r.eval.FindCriteriaByID(point.CriteriaID); err == nil {
			row.Criteria = *criteria
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakePointRepo) SumRawByActivityGroup(studentID, activityID, groupID uint) (float64, error) {
	if r.sumErr != nil {
		return 0, r.sumErr
	}
	var sum float64
	for _, point := range r.rows {
		if point.StudentID == studentID && point.ActivityID == activityID && r.groupOf(point.CriteriaID) == groupID {
			sum += point.Score
		}
	}
	return sum, nil
}

func (r *fakePointRepo) SumRawByGroup(studentID, groupID uint) (float64, error) {
	if r.sumErr != nil {
		return 0, r.sumErr
	}
	var sum float64
	for _, point := range r.rows {
		if point.StudentID == studentID && r.groupOf(point.CriteriaID) == groupID {
			sum += point.Score
		}
	}
	return sum, nil
}

func (r *fakePointRepo) UpdateGroupSubtotal(studentID, activityID, groupID uint, subtotal float64) error {
	for _, point := range r.rows {
		if point.StudentID == studentID && point.ActivityID == activityID && r.groupOf(point.CriteriaID) == groupID {
			point.GroupTotalScore = subtotal
		}
	}
	return nil
}

func (r *fakePointRepo) StudentIDsByGroup(groupID uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, point := range r.rows {
		if r.groupOf(point.CriteriaID) == groupID && !seen[point.StudentID] {
			seen[point.StudentID] = true
			ids = append(ids, point.StudentID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakePointRepo) StudentIDsByCriteria(criteriaID uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, point := range r.rows {
		if point.CriteriaID == criteriaID && !seen[point.StudentID] {
			seen[point.StudentID] = true
			ids = append(ids, point.StudentID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakePointRepo) ActivityIDsByStudentAndGroup(studentID, groupID uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, point := range r.rows {
		if point.StudentID == studentID && r.groupOf(point.CriteriaID) == groupID && !seen[point.ActivityID] {
			seen[point.ActivityID] = true
			ids = append(ids, point.ActivityID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakePointRepo) DeleteByCriteria(criteriaID uint) error {
	for id, point := range r.rows {
		if point.CriteriaID == criteriaID {
			delete(r.rows, id)
		}
	}
	return nil
}

// --- registrations ---

type regKey struct{ studentID, activityID uint }

type fakeRegistrationRepo struct {
	registrations map[regKey]*model.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{registrations: make(map[regKey]*model.Registration)}
}

func (r *fakeRegistrationRepo) Create(registration *model.Registration) error {
	r.registrations[regKey{registration.StudentID, registration.ActivityID}] = registration
	return nil
}

func (r *fakeRegistrationRepo) FindByStudentAndActivity(studentID, activityID uint) (*model.Registration, error) {
	registration, ok := r.registrations[regKey{studentID, activityID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return registration, nil
}

func (r *fakeRegistrationRepo) FindAllByStudent(studentID uint) ([]model.Registration, error) {
	var out []model.Registration
	for key, registration := range r.registrations {
		if key.studentID == studentID {
			out = append(out, *registration)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) FindAllByActivity(activityID uint) ([]model.Registration, error) {
	var out []model.Registration
	for key, registration := range r.registrations {
		if key.activityID == activityID {
			out = append(out, *registration)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) CountByActivity(activityID uint) (int64, error) {
	var count int64
	for key := range r.registrations {
		if key.activityID == activityID {
			count++
		}
	}
	return count, nil
}

// --- participations ---

type fakeParticipationRepo struct {
	participations map[regKey]*model.Participation
	nextID         uint
}

func newFakeParticipationRepo() *fakeParticipationRepo {
	return &fakeParticipationRepo{participations: make(map[regKey]*model.Participation), nextID: 1}
}

func (r *fakeParticipationRepo) Create(participation *model.Participation) error {
	participation.ID = r.nextID
	r.nextID++
	r.participations[regKey{participation.StudentID, participation.ActivityID}] = participation
	return nil
}

func (r *fakeParticipationRepo) Save(participation *model.Participation) error {
	r.participations[regKey{participation.StudentID, participation.ActivityID}] = participation
	return nil
}

func (r *fakeParticipationRepo) FindByID(id uint) (*model.Participation, error) {
	for _, participation := range r.participations {
		if participation.ID == id {
			return participation, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParticipationRepo) FindByStudentAndActivity(studentID, activityID uint) (*model.Participation, error) {
	participation, ok := r.participations[regKey{studentID, activityID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return participation, nil
}

func (r *fakeParticipationRepo) FindAllByStudent(studentID uint) ([]model.Participation, error) {
	var out []model.Participation
	for key, participation := range r.participations {
		if key.studentID == studentID {
			out = append(out, *participation)
		}
	}
	return out, nil
}

func (r *fakeParticipationRepo) FindAllByActivity(activityID uint) ([]model.Participation, error) {
	var out []model.Participation
	for key, participation := range r.participations {
		if key.activityID == activityID {
			out = append(out, *participation)
		}
	}
	return out, nil
}

var errFakeDB = errors.New("fake database failure")
