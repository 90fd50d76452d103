package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

type mockStudentRepo struct {
	items     map[string]*models.Student
	created   []models.Student
	findErr   error
	existsErr error
	createErr error
}

func (m *mockStudentRepo) FindByCredentials(ctx context.Context, name, phone string) (*models.Student, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, s := range m.items {
		if s.Name == name && s.Phone == phone {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByPRN(ctx context.Context, prn string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, s := range m.items {
		if s.PRN == prn {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	for _, s := range m.items {
		if s.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.items == nil {
		m.items = make(map[string]*models.Student)
	}
	if student.ID == "" {
		student.ID = "generated-student"
	}
	cp := *student
	m.items[student.ID] = &cp
	m.created = append(m.created, cp)
	return nil
}

func (m *mockStudentRepo) ListByDepartment(ctx context.Context, department string) ([]models.Student, error) {
	out := []models.Student{}
	for _, s := range m.items {
		if s.Department == department {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockStudentRepo) CountByDepartment(ctx context.Context, department string) (int, error) {
	list, _ := m.ListByDepartment(ctx, department)
	return len(list), nil
}

func (m *mockStudentRepo) DeleteInDepartment(ctx context.Context, id, department string) (bool, error) {
	if s, ok := m.items[id]; ok && s.Department == department {
		delete(m.items, id)
		return true, nil
	}
	return false, nil
}

type mockTeacherRepo struct {
	items      map[string]*models.Teacher
	findErr    error
	enableErr  error
	enables    int
	disables   int
	created    []models.Teacher
	lastEnable *models.Lecture
}

func (m *mockTeacherRepo) FindByCredentials(ctx context.Context, name, phone string) (*models.Teacher, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, t := range m.items {
		if t.Name == name && t.Phone == phone {
			cp := *t
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if t, ok := m.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) EnableAttendance(ctx context.Context, id string, lecture models.Lecture) (bool, error) {
	m.enables++
	if m.enableErr != nil {
		return false, m.enableErr
	}
	t, ok := m.items[id]
	if !ok {
		return false, nil
	}
	t.AttendanceEnabled = true
	l := lecture
	t.CurrentLecture = &l
	m.lastEnable = &l
	return true, nil
}

func (m *mockTeacherRepo) DisableAttendance(ctx context.Context, id string) (bool, error) {
	m.disables++
	t, ok := m.items[id]
	if !ok {
		return false, nil
	}
	t.AttendanceEnabled = false
	t.CurrentLecture = nil
	return true, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if m.items == nil {
		m.items = make(map[string]*models.Teacher)
	}
	if teacher.ID == "" {
		teacher.ID = "generated-teacher"
	}
	cp := *teacher
	m.items[teacher.ID] = &cp
	m.created = append(m.created, cp)
	return nil
}

func (m *mockTeacherRepo) ListByDepartment(ctx context.Context, department string) ([]models.Teacher, error) {
	out := []models.Teacher{}
	for _, t := range m.items {
		if t.Department == department {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTeacherRepo) CountByDepartment(ctx context.Context, department string) (int, error) {
	list, _ := m.ListByDepartment(ctx, department)
	return len(list), nil
}

func (m *mockTeacherRepo) DeleteInDepartment(ctx context.Context, id, department string) (bool, error) {
	if t, ok := m.items[id]; ok && t.Department == department {
		delete(m.items, id)
		return true, nil
	}
	return false, nil
}

type mockHODRepo struct {
	items     []models.HOD
	createErr error
	creates   int
}

func (m *mockHODRepo) FindByCredentials(ctx context.Context, name, phone string) (*models.HOD, error) {
	for _, h := range m.items {
		if h.Name == name && h.Phone == phone {
			cp := h
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockHODRepo) exists(match func(models.HOD) bool) (bool, error) {
	for _, h := range m.items {
		if match(h) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockHODRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return m.exists(func(h models.HOD) bool { return h.Phone == phone })
}

func (m *mockHODRepo) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	return m.exists(func(h models.HOD) bool { return h.EmployeeID == employeeID })
}

func (m *mockHODRepo) ExistsByDepartment(ctx context.Context, department string) (bool, error) {
	return m.exists(func(h models.HOD) bool { return h.Department == department })
}

func (m *mockHODRepo) Create(ctx context.Context, hod *models.HOD) error {
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if hod.ID == "" {
		hod.ID = "generated-hod"
	}
	m.items = append(m.items, *hod)
	return nil
}

// mockDepartmentRepo mirrors the add-to-set semantics of the SQL upsert.
type mockDepartmentRepo struct {
	items     map[string]*models.Department
	createErr error
}

func (m *mockDepartmentRepo) ensure() {
	if m.items == nil {
		m.items = make(map[string]*models.Department)
	}
}

func (m *mockDepartmentRepo) FindByName(ctx context.Context, name string) (*models.Department, error) {
	if d, ok := m.items[name]; ok {
		cp := *d
		cp.Classes = append([]string(nil), d.Classes...)
		cp.Divisions = append([]string(nil), d.Divisions...)
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	out := []models.Department{}
	for _, d := range m.items {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDepartmentRepo) ExistsByNameFold(ctx context.Context, name string) (bool, error) {
	for n := range m.items {
		if strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDepartmentRepo) CreateIfMissing(ctx context.Context, dept *models.Department) (bool, error) {
	if m.createErr != nil {
		return false, m.createErr
	}
	m.ensure()
	if _, ok := m.items[dept.Name]; ok {
		return false, nil
	}
	cp := *dept
	m.items[dept.Name] = &cp
	return true, nil
}

func (m *mockDepartmentRepo) add(department, value string, classes bool) (bool, error) {
	m.ensure()
	d, ok := m.items[department]
	if !ok {
		d = &models.Department{Name: department}
		m.items[department] = d
	}
	list := &d.Divisions
	if classes {
		list = &d.Classes
	}
	for _, v := range *list {
		if v == value {
			return false, nil
		}
	}
	*list = append(*list, value)
	return true, nil
}

func (m *mockDepartmentRepo) AddClass(ctx context.Context, department, class string) (bool, error) {
	return m.add(department, class, true)
}

func (m *mockDepartmentRepo) AddDivision(ctx context.Context, department, division string) (bool, error) {
	return m.add(department, division, false)
}

type mockAttendanceRepo struct {
	records   []models.AttendanceRecord
	createErr error
	listErr   error
	creates   int
}

func (m *mockAttendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if record.ID == "" {
		record.ID = "generated-record"
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockAttendanceRepo) ListByPRN(ctx context.Context, prn string) ([]models.AttendanceRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []models.AttendanceRecord{}
	for _, r := range m.records {
		if r.StudentPRN == prn {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.AttendanceRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []models.AttendanceRecord{}
	for _, r := range m.records {
		if r.TeacherID == teacherID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ExistsForLecture(ctx context.Context, teacherID, prn, lectureNumber, lectureDate string) (bool, error) {
	for _, r := range m.records {
		if r.TeacherID == teacherID && r.StudentPRN == prn && r.LectureNumber == lectureNumber && r.LectureDate == lectureDate {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAttendanceRepo) DeleteForTeacher(ctx context.Context, id, teacherID string) (bool, error) {
	for i, r := range m.records {
		if r.ID == id && r.TeacherID == teacherID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type mockSessionStore struct {
	items   map[string]models.Session
	saveErr error
}

func (m *mockSessionStore) Save(ctx context.Context, session models.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.items == nil {
		m.items = make(map[string]models.Session)
	}
	m.items[session.Key] = session
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, key string) (*models.Session, error) {
	s, ok := m.items[key]
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return &s, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, key string) error {
	delete(m.items, key)
	return nil
}

type countingRecorder struct {
	logins        map[string]int
	registrations map[string]int
	marks         map[string]int
	toggles       []bool
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{logins: map[string]int{}, registrations: map[string]int{}, marks: map[string]int{}}
}

func (c *countingRecorder) RecordLogin(role, outcome string) {
	c.logins[role+":"+outcome]++
}

func (c *countingRecorder) RecordRegistration(role, outcome string) {
	c.registrations[role+":"+outcome]++
}

func (c *countingRecorder) RecordMark(outcome string) {
	c.marks[outcome]++
}

func (c *countingRecorder) RecordLectureToggle(enabled bool) {
	c.toggles = append(c.toggles, enabled)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
