package usecase

import (
	"context"
	"fmt"
	"sync"

	"trainops-service/internal/domain/entity"
	"trainops-service/pkg/metrics"
)

// Shared across the package's tests; promauto registers against the default
// registry and would panic on a second registration.
var testMetrics = metrics.NewMetrics("trainops_test")

type fakeMissionRepo struct {
	mu             sync.Mutex
	missions       map[string]*entity.Mission
	reserveErr     error
	remindable     []*entity.Mission
	reminderMarked []string
	completedIDs   []string
}

func newFakeMissionRepo() *fakeMissionRepo {
	return &fakeMissionRepo{missions: map[string]*entity.Mission{}}
}

func (f *fakeMissionRepo) Reserve(ctx context.Context, mission *entity.Mission, lockKeys []int64, precheck func(ctx context.Context) error) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	// precheck reads back through the repo, so it runs before the lock
	if err := precheck(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missions[mission.ID] = mission
	return nil
}

func (f *fakeMissionRepo) GetByID(ctx context.Context, id string) (*entity.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mission, ok := f.missions[id]
	if !ok {
		return nil, fmt.Errorf("mission %s not found", id)
	}
	return mission, nil
}

func (f *fakeMissionRepo) Update(ctx context.Context, mission *entity.Mission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missions[mission.ID] = mission
	return nil
}

func (f *fakeMissionRepo) ListByEnrollment(ctx context.Context, enrollmentID string) ([]*entity.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Mission
	for _, m := range f.missions {
		if m.EnrollmentID == enrollmentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMissionRepo) ListOnDate(ctx context.Context, date string) ([]*entity.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Mission
	for _, m := range f.missions {
		if m.ScheduledDate == date {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMissionRepo) CountByEnrollment(ctx context.Context, enrollmentID string) (int64, error) {
	missions, _ := f.ListByEnrollment(ctx, enrollmentID)
	return int64(len(missions)), nil
}

func (f *fakeMissionRepo) activeOnDate(date string, match func(*entity.Mission) bool) []*entity.Mission {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Mission
	for _, m := range f.missions {
		if m.ScheduledDate != date {
			continue
		}
		if m.Status != entity.MissionScheduled && m.Status != entity.MissionInProgress {
			continue
		}
		if match(m) {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeMissionRepo) FindForStudentOnDate(ctx context.Context, studentID, date string) ([]*entity.Mission, error) {
	return f.activeOnDate(date, func(m *entity.Mission) bool { return m.StudentID == studentID }), nil
}

func (f *fakeMissionRepo) FindForInstructorOnDate(ctx context.Context, instructorID, date string) ([]*entity.Mission, error) {
	return f.activeOnDate(date, func(m *entity.Mission) bool { return m.InstructorID == instructorID }), nil
}

func (f *fakeMissionRepo) FindForAircraftOnDate(ctx context.Context, aircraftID, date string) ([]*entity.Mission, error) {
	return f.activeOnDate(date, func(m *entity.Mission) bool { return m.AircraftID == aircraftID }), nil
}

func (f *fakeMissionRepo) CompletedLessonIDs(ctx context.Context, enrollmentID string) ([]string, error) {
	return f.completedIDs, nil
}

func (f *fakeMissionRepo) FindRemindable(ctx context.Context, date string) ([]*entity.Mission, error) {
	return f.remindable, nil
}

func (f *fakeMissionRepo) MarkReminderSent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminderMarked = append(f.reminderMarked, id)
	return nil
}

type fakeEnrollmentRepo struct {
	enrollments map[string]*entity.Enrollment
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	f.enrollments[enrollment.ID] = enrollment
	return nil
}

func (f *fakeEnrollmentRepo) GetByID(ctx context.Context, id string) (*entity.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, fmt.Errorf("enrollment %s not found", id)
	}
	return enrollment, nil
}

func (f *fakeEnrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]*entity.Enrollment, error) {
	var out []*entity.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s not found", id)
	}
	return profile, nil
}

func (f *fakeProfileRepo) ListByRole(ctx context.Context, role string) ([]*entity.Profile, error) {
	var out []*entity.Profile
	for _, p := range f.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAircraftRepo struct {
	aircraft    map[string]*entity.Aircraft
	maintenance []*entity.MaintenanceEvent
}

func (f *fakeAircraftRepo) GetByID(ctx context.Context, id string) (*entity.Aircraft, error) {
	a, ok := f.aircraft[id]
	if !ok {
		return nil, fmt.Errorf("aircraft %s not found", id)
	}
	return a, nil
}

func (f *fakeAircraftRepo) List(ctx context.Context) ([]*entity.Aircraft, error) {
	var out []*entity.Aircraft
	for _, a := range f.aircraft {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAircraftRepo) MaintenanceOn(ctx context.Context, aircraftID, date string) ([]*entity.MaintenanceEvent, error) {
	var out []*entity.MaintenanceEvent
	for _, m := range f.maintenance {
		if m.AircraftID == aircraftID && m.StartDate <= date && m.EndDate >= date {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAircraftRepo) ListMaintenance(ctx context.Context, aircraftID string) ([]*entity.MaintenanceEvent, error) {
	return f.maintenance, nil
}

type fakeAvailabilityRepo struct {
	records map[string]*entity.AvailabilityRecord // keyed resourceID + "|" + date
}

func (f *fakeAvailabilityRepo) Upsert(ctx context.Context, record *entity.AvailabilityRecord) error {
	f.records[record.ResourceID+"|"+record.Date] = record
	return nil
}

func (f *fakeAvailabilityRepo) GetForDate(ctx context.Context, resourceID, date string) (*entity.AvailabilityRecord, error) {
	return f.records[resourceID+"|"+date], nil
}

func (f *fakeAvailabilityRepo) ListForResource(ctx context.Context, resourceID string) ([]*entity.AvailabilityRecord, error) {
	var out []*entity.AvailabilityRecord
	for _, r := range f.records {
		if r.ResourceID == resourceID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSyllabusRepo struct {
	syllabi map[string]*entity.Syllabus
	lessons []entity.SyllabusLesson
}

func (f *fakeSyllabusRepo) GetByID(ctx context.Context, id string) (*entity.Syllabus, error) {
	s, ok := f.syllabi[id]
	if !ok {
		return nil, fmt.Errorf("syllabus %s not found", id)
	}
	return s, nil
}

func (f *fakeSyllabusRepo) LessonsBySyllabus(ctx context.Context, syllabusID string) ([]entity.SyllabusLesson, error) {
	var out []entity.SyllabusLesson
	for _, l := range f.lessons {
		if l.SyllabusID == syllabusID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSyllabusRepo) GetLesson(ctx context.Context, id string) (*entity.SyllabusLesson, error) {
	for i := range f.lessons {
		if f.lessons[i].ID == id {
			return &f.lessons[i], nil
		}
	}
	return nil, fmt.Errorf("lesson %s not found", id)
}

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	f.invoices = append(f.invoices, invoice)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("invoice %s not found", id)
}

func (f *fakeInvoiceRepo) ListByStudent(ctx context.Context, studentID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.StudentID == studentID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeCalendarRepo struct {
	events []*entity.CalendarEvent
}

func (f *fakeCalendarRepo) PushEvent(ctx context.Context, event *entity.CalendarEvent) error {
	f.events = append(f.events, event)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

// recordingHandler captures every event dispatched to it
type recordingHandler struct {
	accepts string
	events  []*NotificationEvent
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return h.accepts == "" || h.accepts == eventType
}

func (h *recordingHandler) Process(ctx context.Context, event *NotificationEvent) error {
	h.events = append(h.events, event)
	return nil
}
