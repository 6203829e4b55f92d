package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"
	"trainops-service/internal/scheduling"
	"trainops-service/internal/usecase"
	"trainops-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Handler serves the REST API
type Handler struct {
	scheduler        *usecase.MissionScheduler
	progress         *usecase.ProgressService
	planner          *usecase.PlanGenerator
	billing          *usecase.BillingService
	availabilityRepo repository.AvailabilityRepository
	aircraftRepo     repository.AircraftRepository
	syllabusRepo     repository.SyllabusRepository
	enrollmentRepo   repository.EnrollmentRepository
	documentRepo     repository.DocumentRepository
	debriefRepo      repository.DebriefRepository
	invoiceRepo      repository.InvoiceRepository
	appVersion       string
	logger           logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	scheduler *usecase.MissionScheduler,
	progress *usecase.ProgressService,
	planner *usecase.PlanGenerator,
	billing *usecase.BillingService,
	availabilityRepo repository.AvailabilityRepository,
	aircraftRepo repository.AircraftRepository,
	syllabusRepo repository.SyllabusRepository,
	enrollmentRepo repository.EnrollmentRepository,
	documentRepo repository.DocumentRepository,
	debriefRepo repository.DebriefRepository,
	invoiceRepo repository.InvoiceRepository,
	appVersion string,
	logger logger.Logger,
) *Handler {
	return &Handler{
		scheduler:        scheduler,
		progress:         progress,
		planner:          planner,
		billing:          billing,
		availabilityRepo: availabilityRepo,
		aircraftRepo:     aircraftRepo,
		syllabusRepo:     syllabusRepo,
		enrollmentRepo:   enrollmentRepo,
		documentRepo:     documentRepo,
		debriefRepo:      debriefRepo,
		invoiceRepo:      invoiceRepo,
		appVersion:       appVersion,
		logger:           logger,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// fail maps domain errors to HTTP status codes
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var conflictErr *usecase.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		h.respondJSON(w, http.StatusConflict, conflictErr.Result)
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, mongo.ErrNoDocuments):
		h.respondError(w, http.StatusNotFound, "not found")
	default:
		h.logger.Error("Request failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// --- missions ---

type missionResponse struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	EnrollmentID       string `json:"enrollment_id"`
	StudentID          string `json:"student_id"`
	InstructorID       string `json:"instructor_id"`
	AircraftID         string `json:"aircraft_id,omitempty"`
	Category           string `json:"category"`
	LessonTemplateID   string `json:"lesson_template_id,omitempty"`
	Date               string `json:"date"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	ActivityMinutes    int    `json:"activity_minutes"`
	Status             string `json:"status"`
	Assessment         string `json:"assessment,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

func toMissionResponse(mission *entity.Mission) missionResponse {
	return missionResponse{
		ID:                 mission.ID,
		Code:               mission.Code,
		EnrollmentID:       mission.EnrollmentID,
		StudentID:          mission.StudentID,
		InstructorID:       mission.InstructorID,
		AircraftID:         mission.AircraftID,
		Category:           mission.Category.Code(),
		LessonTemplateID:   mission.LessonTemplateID,
		Date:               mission.ScheduledDate,
		StartTime:          mission.StartTime,
		EndTime:            mission.EndTime,
		ActivityMinutes:    mission.ActivityMinutes,
		Status:             mission.Status,
		Assessment:         mission.Assessment,
		CancellationReason: mission.CancellationReason,
	}
}

type createMissionRequest struct {
	EnrollmentID     string `json:"enrollment_id"`
	InstructorID     string `json:"instructor_id"`
	AircraftID       string `json:"aircraft_id"`
	LessonTemplateID string `json:"lesson_template_id"`
	Category         string `json:"category"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	ActivityMinutes  int    `json:"activity_minutes"`
}

// CreateMission books a new mission
func (h *Handler) CreateMission(w http.ResponseWriter, r *http.Request) {
	var req createMissionRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := entity.ParseMissionCategory(req.Category)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.EnrollmentID == "" || req.InstructorID == "" || req.Date == "" || req.StartTime == "" {
		h.respondError(w, http.StatusBadRequest, "enrollment_id, instructor_id, date and start_time are required")
		return
	}
	if category == entity.CategoryFlight && req.AircraftID == "" {
		h.respondError(w, http.StatusBadRequest, "flight missions require aircraft_id")
		return
	}

	mission, breakdown, err := h.scheduler.Schedule(r.Context(), usecase.ScheduleMissionInput{
		EnrollmentID:     req.EnrollmentID,
		InstructorID:     req.InstructorID,
		AircraftID:       req.AircraftID,
		LessonTemplateID: req.LessonTemplateID,
		Category:         category,
		Date:             req.Date,
		StartTime:        req.StartTime,
		ActivityMinutes:  req.ActivityMinutes,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"mission":     toMissionResponse(mission),
		"time_blocks": breakdown,
	})
}

// GetMission returns one mission
func (h *Handler) GetMission(w http.ResponseWriter, r *http.Request) {
	mission, err := h.scheduler.GetMission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toMissionResponse(mission))
}

// ListMissions returns the day's missions for the dispatch board
func (h *Handler) ListMissions(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	missions, err := h.scheduler.ListOnDate(r.Context(), date)
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]missionResponse, 0, len(missions))
	for _, mission := range missions {
		out = append(out, toMissionResponse(mission))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// ListEnrollmentMissions returns an enrollment's missions, newest first
func (h *Handler) ListEnrollmentMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.scheduler.ListByEnrollment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]missionResponse, 0, len(missions))
	for _, mission := range missions {
		out = append(out, toMissionResponse(mission))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// CancelMission cancels a scheduled mission
func (h *Handler) CancelMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	mission, err := h.scheduler.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toMissionResponse(mission))
}

// CompleteMission records the instructor's assessment and closes the mission
func (h *Handler) CompleteMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Assessment string `json:"assessment"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	mission, err := h.scheduler.Complete(r.Context(), chi.URLParam(r, "id"), req.Assessment)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toMissionResponse(mission))
}

// --- scheduling ---

type checkAvailabilityRequest struct {
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	ActivityMinutes  int    `json:"activity_minutes"`
	Category         string `json:"category"`
	StudentID        string `json:"student_id"`
	InstructorID     string `json:"instructor_id"`
	AircraftID       string `json:"aircraft_id"`
	ExcludeMissionID string `json:"exclude_mission_id"`
}

// CheckAvailability runs the conflict checker without booking
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req checkAvailabilityRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := entity.ParseMissionCategory(req.Category)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.scheduler.CheckAvailability(r.Context(), scheduling.CheckRequest{
		Date:             req.Date,
		StartTime:        req.StartTime,
		ActivityMinutes:  req.ActivityMinutes,
		Category:         category,
		StudentID:        req.StudentID,
		InstructorID:     req.InstructorID,
		AircraftID:       req.AircraftID,
		ExcludeMissionID: req.ExcludeMissionID,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

type timeBlocksRequest struct {
	Category        string `json:"category"`
	StartTime       string `json:"start_time"`
	ActivityMinutes int    `json:"activity_minutes"`
}

// PreviewTimeBlocks computes the block breakdown for a proposed mission
func (h *Handler) PreviewTimeBlocks(w http.ResponseWriter, r *http.Request) {
	var req timeBlocksRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := entity.ParseMissionCategory(req.Category)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	breakdown, err := scheduling.ComputeTimeBlocks(category, req.StartTime, req.ActivityMinutes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, breakdown)
}

// --- progress ---

// GetProgress returns the enrollment's syllabus position
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.GetProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, progress)
}

// GetSuggestions returns next-mission options for the enrollment
func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.progress.Suggestions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, suggestions)
}

// --- enrollments ---

type enrollmentResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	SyllabusID  string `json:"syllabus_id"`
	ProgramCode string `json:"program_code"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
}

func toEnrollmentResponse(enrollment *entity.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		ID:          enrollment.ID,
		StudentID:   enrollment.StudentID,
		SyllabusID:  enrollment.SyllabusID,
		ProgramCode: enrollment.ProgramCode,
		Status:      enrollment.Status,
		StartDate:   enrollment.StartDate,
	}
}

type createEnrollmentRequest struct {
	StudentID  string `json:"student_id"`
	SyllabusID string `json:"syllabus_id"`
	StartDate  string `json:"start_date"`
}

// CreateEnrollment enrolls a student in a syllabus
func (h *Handler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var req createEnrollmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.StudentID == "" || req.SyllabusID == "" {
		h.respondError(w, http.StatusBadRequest, "student_id and syllabus_id are required")
		return
	}

	syllabus, err := h.syllabusRepo.GetByID(r.Context(), req.SyllabusID)
	if err != nil {
		h.fail(w, err)
		return
	}

	now := time.Now()
	enrollment := &entity.Enrollment{
		ID:          uuid.NewString(),
		StudentID:   req.StudentID,
		SyllabusID:  syllabus.ID,
		ProgramCode: syllabus.ProgramCode,
		Status:      entity.EnrollmentActive,
		StartDate:   req.StartDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if enrollment.StartDate == "" {
		enrollment.StartDate = now.Format("2006-01-02")
	}

	if err := h.enrollmentRepo.Create(r.Context(), enrollment); err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toEnrollmentResponse(enrollment))
}

// ListStudentEnrollments returns a student's enrollments
func (h *Handler) ListStudentEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.enrollmentRepo.ListByStudent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]enrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		out = append(out, toEnrollmentResponse(enrollment))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// --- availability ---

type availabilityResponse struct {
	ResourceID string `json:"resource_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func toAvailabilityResponse(record *entity.AvailabilityRecord) availabilityResponse {
	return availabilityResponse{
		ResourceID: record.ResourceID,
		Date:       record.Date,
		Status:     record.Status,
		StartTime:  record.StartTime,
		EndTime:    record.EndTime,
		Notes:      record.Notes,
	}
}

type upsertAvailabilityRequest struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

// UpsertAvailability records a resource's availability for one date
func (h *Handler) UpsertAvailability(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")

	var req upsertAvailabilityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Date == "" {
		h.respondError(w, http.StatusBadRequest, "date is required")
		return
	}
	switch req.Status {
	case entity.AvailabilityAvailable, entity.AvailabilityNotAvailable, entity.AvailabilityTentative:
	default:
		h.respondError(w, http.StatusBadRequest, "status must be available, not_available or tentative")
		return
	}

	now := time.Now()
	record := &entity.AvailabilityRecord{
		ID:         uuid.NewString(),
		ResourceID: resourceID,
		Date:       req.Date,
		Status:     req.Status,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.availabilityRepo.Upsert(r.Context(), record); err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toAvailabilityResponse(record))
}

// ListAvailability returns a resource's availability records. With ?date= it
// narrows to the single record for that date, 404 when unset.
func (h *Handler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")

	if date := r.URL.Query().Get("date"); date != "" {
		record, err := h.availabilityRepo.GetForDate(r.Context(), resourceID, date)
		if err != nil {
			h.fail(w, err)
			return
		}
		if record == nil {
			h.respondError(w, http.StatusNotFound, "no availability record for that date")
			return
		}
		h.respondJSON(w, http.StatusOK, toAvailabilityResponse(record))
		return
	}

	records, err := h.availabilityRepo.ListForResource(r.Context(), resourceID)
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]availabilityResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toAvailabilityResponse(record))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// --- aircraft ---

type aircraftResponse struct {
	ID         string `json:"id"`
	TailNumber string `json:"tail_number"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Status     string `json:"status"`
}

func toAircraftResponse(aircraft *entity.Aircraft) aircraftResponse {
	return aircraftResponse{
		ID:         aircraft.ID,
		TailNumber: aircraft.TailNumber,
		Make:       aircraft.Make,
		Model:      aircraft.Model,
		Status:     aircraft.Status,
	}
}

// ListAircraft returns the fleet
func (h *Handler) ListAircraft(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.aircraftRepo.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]aircraftResponse, 0, len(fleet))
	for _, aircraft := range fleet {
		out = append(out, toAircraftResponse(aircraft))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// GetAircraft returns one aircraft
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	aircraft, err := h.aircraftRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toAircraftResponse(aircraft))
}

type maintenanceResponse struct {
	ID          string `json:"id"`
	AircraftID  string `json:"aircraft_id"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

// ListMaintenance returns an aircraft's maintenance windows
func (h *Handler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	events, err := h.aircraftRepo.ListMaintenance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]maintenanceResponse, 0, len(events))
	for _, event := range events {
		out = append(out, maintenanceResponse{
			ID:          event.ID,
			AircraftID:  event.AircraftID,
			Status:      event.Status,
			StartDate:   event.StartDate,
			EndDate:     event.EndDate,
			Description: event.Description,
		})
	}
	h.respondJSON(w, http.StatusOK, out)
}

// --- syllabi ---

type lessonResponse struct {
	ID               string `json:"id"`
	SyllabusID       string `json:"syllabus_id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	OrderIndex       int    `json:"order_index"`
	LessonType       string `json:"lesson_type"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

// GetSyllabus returns a syllabus with its lessons
func (h *Handler) GetSyllabus(w http.ResponseWriter, r *http.Request) {
	syllabus, err := h.syllabusRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	lessons, err := h.syllabusRepo.LessonsBySyllabus(r.Context(), syllabus.ID)
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]lessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, toLessonResponse(lesson))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":           syllabus.ID,
		"program_code": syllabus.ProgramCode,
		"title":        syllabus.Title,
		"description":  syllabus.Description,
		"lessons":      out,
	})
}

// ListSyllabusLessons returns the ordered lessons of a syllabus
func (h *Handler) ListSyllabusLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.syllabusRepo.LessonsBySyllabus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]lessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, toLessonResponse(lesson))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func toLessonResponse(lesson entity.SyllabusLesson) lessonResponse {
	return lessonResponse{
		ID:               lesson.ID,
		SyllabusID:       lesson.SyllabusID,
		Title:            lesson.Title,
		Description:      lesson.Description,
		OrderIndex:       lesson.OrderIndex,
		LessonType:       lesson.LessonType,
		EstimatedMinutes: lesson.EstimatedMinutes,
	}
}

// --- plans and debriefs ---

// GeneratePlan drafts a plan of action for the mission
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planner.GeneratePlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, plan)
}

// GetPlan returns the mission's plan of action
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.debriefRepo.GetPlanByMission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, plan)
}

// GenerateDebrief drafts a debrief from instructor notes
func (h *Handler) GenerateDebrief(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.Notes == "" {
		h.respondError(w, http.StatusBadRequest, "notes are required")
		return
	}

	debrief, err := h.planner.GenerateDebrief(r.Context(), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, debrief)
}

// GetDebrief returns the mission's debrief
func (h *Handler) GetDebrief(w http.ResponseWriter, r *http.Request) {
	debrief, err := h.debriefRepo.GetDebriefByMission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, debrief)
}

// --- documents ---

type createDocumentRequest struct {
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
	ExpiresOn   string `json:"expires_on"`
}

// CreateDocument stores uploaded-file metadata
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.OwnerID == "" || req.Name == "" || req.StorageKey == "" {
		h.respondError(w, http.StatusBadRequest, "owner_id, name and storage_key are required")
		return
	}
	if req.Category == "" {
		req.Category = entity.DocumentOther
	}

	document := &entity.Document{
		ID:          uuid.NewString(),
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Category:    req.Category,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
		ExpiresOn:   req.ExpiresOn,
		UploadedAt:  time.Now(),
	}

	if err := h.documentRepo.Save(r.Context(), document); err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, document)
}

// GetDocument returns document metadata
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	document, err := h.documentRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, document)
}

// ListOwnerDocuments returns a user's documents
func (h *Handler) ListOwnerDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.documentRepo.ListByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, documents)
}

// --- invoices ---

type invoiceResponse struct {
	ID         string                `json:"id"`
	MissionID  string                `json:"mission_id"`
	StudentID  string                `json:"student_id"`
	Status     string                `json:"status"`
	TotalCents int64                 `json:"total_cents"`
	LineItems  []invoiceLineItemResp `json:"line_items"`
	IssuedAt   *time.Time            `json:"issued_at,omitempty"`
}

type invoiceLineItemResp struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Minutes     int    `json:"minutes"`
	RateCents   int64  `json:"rate_cents"`
	AmountCents int64  `json:"amount_cents"`
}

func toInvoiceResponse(invoice *entity.Invoice) invoiceResponse {
	out := invoiceResponse{
		ID:         invoice.ID,
		MissionID:  invoice.MissionID,
		StudentID:  invoice.StudentID,
		Status:     invoice.Status,
		TotalCents: invoice.TotalCents,
		IssuedAt:   invoice.IssuedAt,
		LineItems:  make([]invoiceLineItemResp, 0, len(invoice.LineItems)),
	}
	for _, item := range invoice.LineItems {
		out.LineItems = append(out.LineItems, invoiceLineItemResp{
			Description: item.Description,
			Category:    item.Category,
			Minutes:     item.Minutes,
			RateCents:   item.RateCents,
			AmountCents: item.AmountCents,
		})
	}
	return out
}

// IssueInvoice bills a completed mission. Completion already issues the
// invoice automatically; this endpoint covers missions closed before billing
// was configured, and refuses to double-bill.
func (h *Handler) IssueInvoice(w http.ResponseWriter, r *http.Request) {
	mission, err := h.scheduler.GetMission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if mission.Status != entity.MissionCompleted {
		h.respondError(w, http.StatusBadRequest, "only completed missions can be invoiced")
		return
	}

	existing, err := h.invoiceRepo.ListByStudent(r.Context(), mission.StudentID)
	if err != nil {
		h.fail(w, err)
		return
	}
	for _, invoice := range existing {
		if invoice.MissionID == mission.ID {
			h.respondError(w, http.StatusConflict, "mission is already invoiced")
			return
		}
	}

	invoice, err := h.billing.IssueForMission(r.Context(), mission)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toInvoiceResponse(invoice))
}

// GetInvoice returns one invoice
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toInvoiceResponse(invoice))
}

// ListStudentInvoices returns a student's invoices
func (h *Handler) ListStudentInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceRepo.ListByStudent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]invoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, toInvoiceResponse(invoice))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// --- health ---

// GetHealth reports service health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.appVersion,
	})
}
