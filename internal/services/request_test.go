package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/events"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/utils"
)

// --- Фейки репозиториев для юнит-тестов сервисного слоя ---

// fakeTxManager выполняет fn без реальной транзакции: фейковым
// репозиториям tx не нужен.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeRequestRepo struct {
	repositories.RequestRepositoryInterface

	rows    map[uint64]*entities.MaintenanceRequest
	hydrate map[uint64]*dto.RequestDTO
	nextID  uint64

	claimDenied  bool
	lastStatus   string
	lastDuration *float64
	assignedTo   map[uint64]uint64
	queueTeamID  uint64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		rows:       make(map[uint64]*entities.MaintenanceRequest),
		hydrate:    make(map[uint64]*dto.RequestDTO),
		nextID:     1,
		assignedTo: make(map[uint64]uint64),
	}
}

func (r *fakeRequestRepo) FindRequest(_ context.Context, id uint64) (*dto.RequestDTO, error) {
	if found, ok := r.hydrate[id]; ok {
		return found, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeRequestRepo) FindForUpdate(_ context.Context, _ pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	if found, ok := r.rows[id]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeRequestRepo) CreateRequestInTx(_ context.Context, _ pgx.Tx, req *entities.MaintenanceRequest) (uint64, error) {
	id := r.nextID
	r.nextID++
	req.ID = id
	r.rows[id] = req
	r.hydrate[id] = &dto.RequestDTO{ID: id, Subject: req.Subject, Status: req.Status}
	return id, nil
}

func (r *fakeRequestRepo) UpdateStatusInTx(_ context.Context, _ pgx.Tx, id uint64, newStatus string, durationHours *float64) error {
	row, ok := r.rows[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	row.Status = newStatus
	r.lastStatus = newStatus
	r.lastDuration = durationHours
	if hydrated, ok := r.hydrate[id]; ok {
		hydrated.Status = newStatus
	}
	return nil
}

func (r *fakeRequestRepo) AssignTechnicianInTx(_ context.Context, _ pgx.Tx, id uint64, technicianID uint64) error {
	r.assignedTo[id] = technicianID
	return nil
}

func (r *fakeRequestRepo) ClaimInTx(_ context.Context, _ pgx.Tx, id uint64, technicianID uint64) (bool, error) {
	if r.claimDenied {
		return false, nil
	}
	r.assignedTo[id] = technicianID
	return true, nil
}

func (r *fakeRequestRepo) GetTeamQueue(_ context.Context, teamID uint64, _ dto.TeamQueueFilterDTO) ([]dto.RequestDTO, uint64, error) {
	r.queueTeamID = teamID
	return []dto.RequestDTO{}, 0, nil
}

func (r *fakeRequestRepo) DeleteRequest(_ context.Context, id uint64) error {
	if _, ok := r.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.rows, id)
	delete(r.hydrate, id)
	return nil
}

type fakeLogRepo struct {
	repositories.MaintenanceLogRepositoryInterface
	entries []entities.MaintenanceLog
}

func (r *fakeLogRepo) CreateInTx(_ context.Context, _ pgx.Tx, log *entities.MaintenanceLog) error {
	r.entries = append(r.entries, *log)
	return nil
}

type fakeEquipmentRepo struct {
	repositories.EquipmentRepositoryInterface
	equipments map[uint64]*entities.Equipment
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	if found, ok := r.equipments[id]; ok {
		return found, nil
	}
	return nil, apperrors.ErrNotFound
}

type fakeTechnicianRepo struct {
	repositories.TechnicianRepositoryInterface
	byID     map[uint64]*entities.Technician
	byUserID map[uint64]*entities.Technician
}

func (r *fakeTechnicianRepo) FindTechnician(_ context.Context, id uint64) (*entities.Technician, error) {
	if found, ok := r.byID[id]; ok {
		return found, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeTechnicianRepo) FindByUserID(_ context.Context, userID uint64) (*entities.Technician, error) {
	if found, ok := r.byUserID[userID]; ok {
		return found, nil
	}
	return nil, apperrors.ErrNotFound
}

type fakeAttachmentRepo struct {
	repositories.AttachmentRepositoryInterface
	byRequest map[uint64][]entities.Attachment
}

func (r *fakeAttachmentRepo) FindByRequestID(_ context.Context, requestID uint64) ([]entities.Attachment, error) {
	return r.byRequest[requestID], nil
}

type fakeFileStorage struct {
	deleted   []string
	deleteErr error
}

func (s *fakeFileStorage) Save(_ io.Reader, _ string, _ string) (string, error) {
	return "", nil
}

func (s *fakeFileStorage) Delete(path string) error {
	s.deleted = append(s.deleted, path)
	return s.deleteErr
}

func requireHttpError(t *testing.T, err error, code int) *apperrors.HttpError {
	t.Helper()
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
	return httpErr
}

type requestServiceEnv struct {
	svc            RequestServiceInterface
	requestRepo    *fakeRequestRepo
	logRepo        *fakeLogRepo
	equipmentRepo  *fakeEquipmentRepo
	technicianRepo *fakeTechnicianRepo
	attachmentRepo *fakeAttachmentRepo
	fileStorage    *fakeFileStorage
	bus            *eventbus.Bus
}

func newRequestServiceEnv() *requestServiceEnv {
	env := &requestServiceEnv{
		requestRepo: newFakeRequestRepo(),
		logRepo:     &fakeLogRepo{},
		equipmentRepo: &fakeEquipmentRepo{equipments: map[uint64]*entities.Equipment{
			10: {ID: 10, Name: "Пресс", CategoryID: 1, DepartmentID: 2, TeamID: 3},
		}},
		technicianRepo: &fakeTechnicianRepo{
			byID:     map[uint64]*entities.Technician{},
			byUserID: map[uint64]*entities.Technician{},
		},
		attachmentRepo: &fakeAttachmentRepo{byRequest: map[uint64][]entities.Attachment{}},
		fileStorage:    &fakeFileStorage{},
		bus:            eventbus.New(zap.NewNop()),
	}
	env.svc = NewRequestService(
		env.requestRepo, env.logRepo, env.equipmentRepo, env.technicianRepo,
		env.attachmentRepo, fakeTxManager{}, env.bus, env.fileStorage, zap.NewNop(),
	)
	return env
}

func TestRequestService_CreateRequest_CopiesTeamFromEquipment(t *testing.T) {
	env := newRequestServiceEnv()

	created, err := env.svc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		Subject:     "Не включается",
		RequestType: constants.RequestTypeCorrective,
		EquipmentID: 10,
	}, 100)
	require.NoError(t, err)
	require.NotNil(t, created)

	row := env.requestRepo.rows[created.ID]
	require.NotNil(t, row)
	assert.Equal(t, uint64(2), row.DepartmentID, "отдел берется из оборудования")
	assert.Equal(t, uint64(3), row.TeamID, "команда берется из оборудования")
	assert.Equal(t, constants.PriorityMedium, row.Priority, "пустой приоритет становится medium")
	assert.Equal(t, constants.StatusNew, row.Status)

	require.Len(t, env.logRepo.entries, 1)
	entry := env.logRepo.entries[0]
	assert.Nil(t, entry.OldStatus)
	assert.Equal(t, constants.StatusNew, entry.NewStatus)
	assert.Equal(t, "Request created", entry.Notes)
	require.NotNil(t, entry.ChangedBy)
	assert.Equal(t, uint64(100), *entry.ChangedBy)
}

// Назначение при создании подчиняется тому же командному инварианту,
// что и явное назначение.
func TestRequestService_CreateRequest_TechnicianFromOtherTeam(t *testing.T) {
	env := newRequestServiceEnv()
	env.technicianRepo.byID[7] = &entities.Technician{ID: 7, TeamID: 99, Name: "Чужой Техник"}

	_, err := env.svc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		Subject:      "Не включается",
		RequestType:  constants.RequestTypeCorrective,
		EquipmentID:  10,
		TechnicianID: utils.ToPtr(uint64(7)),
	}, 100)
	httpErr := requireHttpError(t, err, http.StatusBadRequest)
	assert.Equal(t, "техник не состоит в команде заявки", httpErr.Message)
	assert.Empty(t, env.requestRepo.rows, "заявка не создается")
	assert.Empty(t, env.logRepo.entries)
}

func TestRequestService_CreateRequest_TechnicianFromEquipmentTeam(t *testing.T) {
	env := newRequestServiceEnv()
	env.technicianRepo.byID[8] = &entities.Technician{ID: 8, TeamID: 3, Name: "Свой Техник"}

	created, err := env.svc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		Subject:      "Не включается",
		RequestType:  constants.RequestTypeCorrective,
		EquipmentID:  10,
		TechnicianID: utils.ToPtr(uint64(8)),
	}, 100)
	require.NoError(t, err)

	row := env.requestRepo.rows[created.ID]
	require.NotNil(t, row)
	require.NotNil(t, row.TechnicianID)
	assert.Equal(t, uint64(8), *row.TechnicianID)
}

func TestRequestService_CreateRequest_UnknownEquipment(t *testing.T) {
	env := newRequestServiceEnv()

	_, err := env.svc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		Subject:     "Не включается",
		RequestType: constants.RequestTypeCorrective,
		EquipmentID: 999,
	}, 100)
	requireHttpError(t, err, http.StatusNotFound)
	assert.Empty(t, env.logRepo.entries)
}

func TestRequestService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	env := newRequestServiceEnv()

	_, err := env.svc.UpdateStatus(context.Background(), 1, dto.UpdateStatusDTO{Status: "broken"}, 100)
	httpErr := requireHttpError(t, err, http.StatusBadRequest)
	assert.Equal(t, "недопустимый статус заявки", httpErr.Message)
	assert.Empty(t, env.requestRepo.lastStatus, "до записи дело не доходит")
}

func TestRequestService_UpdateStatus_DurationOnlyForRepaired(t *testing.T) {
	env := newRequestServiceEnv()
	id, err := env.requestRepo.CreateRequestInTx(context.Background(), nil, &entities.MaintenanceRequest{
		Subject: "Шум", Status: constants.StatusNew, EquipmentID: 10,
	})
	require.NoError(t, err)

	// Для нетерминального перехода длительность игнорируется.
	_, err = env.svc.UpdateStatus(context.Background(), id, dto.UpdateStatusDTO{
		Status:        constants.StatusInProgress,
		DurationHours: utils.ToPtr(5.0),
	}, 100)
	require.NoError(t, err)
	assert.Nil(t, env.requestRepo.lastDuration)

	_, err = env.svc.UpdateStatus(context.Background(), id, dto.UpdateStatusDTO{
		Status:        constants.StatusRepaired,
		DurationHours: utils.ToPtr(2.5),
	}, 100)
	require.NoError(t, err)
	require.NotNil(t, env.requestRepo.lastDuration)
	assert.InDelta(t, 2.5, *env.requestRepo.lastDuration, 0.001)

	require.Len(t, env.logRepo.entries, 2)
	last := env.logRepo.entries[1]
	require.NotNil(t, last.OldStatus)
	assert.Equal(t, constants.StatusInProgress, *last.OldStatus)
	assert.Equal(t, constants.StatusRepaired, last.NewStatus)
	assert.Equal(t, "Status changed to repaired (2.5 h)", last.Notes)
}

func TestRequestService_UpdateStatus_ScrapPublishesEvent(t *testing.T) {
	env := newRequestServiceEnv()
	id, err := env.requestRepo.CreateRequestInTx(context.Background(), nil, &entities.MaintenanceRequest{
		Subject: "Под списание", Status: constants.StatusInProgress, EquipmentID: 10,
	})
	require.NoError(t, err)

	received := make(chan events.RequestScrappedEvent, 1)
	env.bus.Subscribe(events.RequestScrappedEventName, func(_ context.Context, e eventbus.Event) error {
		received <- e.(events.RequestScrappedEvent)
		return nil
	})

	_, err = env.svc.UpdateStatus(context.Background(), id, dto.UpdateStatusDTO{Status: constants.StatusScrap}, 100)
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, id, event.RequestID)
		assert.Equal(t, uint64(10), event.EquipmentID)
		assert.Equal(t, uint64(100), event.ChangedBy)
	case <-time.After(2 * time.Second):
		t.Fatal("событие списания не опубликовано")
	}
}

func TestRequestService_UpdateStatus_RepairedDoesNotPublish(t *testing.T) {
	env := newRequestServiceEnv()
	id, err := env.requestRepo.CreateRequestInTx(context.Background(), nil, &entities.MaintenanceRequest{
		Subject: "Ремонт", Status: constants.StatusInProgress, EquipmentID: 10,
	})
	require.NoError(t, err)

	received := make(chan events.RequestScrappedEvent, 1)
	env.bus.Subscribe(events.RequestScrappedEventName, func(_ context.Context, e eventbus.Event) error {
		received <- e.(events.RequestScrappedEvent)
		return nil
	})

	_, err = env.svc.UpdateStatus(context.Background(), id, dto.UpdateStatusDTO{Status: constants.StatusRepaired}, 100)
	require.NoError(t, err)

	select {
	case <-received:
		t.Fatal("repaired не должен публиковать событие списания")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRequestService_AssignTechnician_TeamMismatch(t *testing.T) {
	env := newRequestServiceEnv()
	env.technicianRepo.byID[7] = &entities.Technician{ID: 7, TeamID: 99, Name: "Чужой Техник"}
	id, err := env.requestRepo.CreateRequestInTx(context.Background(), nil, &entities.MaintenanceRequest{
		Subject: "Заявка", Status: constants.StatusNew, TeamID: 3, EquipmentID: 10,
	})
	require.NoError(t, err)

	_, err = env.svc.AssignTechnician(context.Background(), id, dto.AssignTechnicianDTO{TechnicianID: 7}, 100)
	httpErr := requireHttpError(t, err, http.StatusBadRequest)
	assert.Equal(t, "техник не состоит в команде заявки", httpErr.Message)
	assert.Empty(t, env.requestRepo.assignedTo)
}

func TestRequestService_AssignTechnician_LogsAssignmentEvent(t *testing.T) {
	env := newRequestServiceEnv()
	env.technicianRepo.byID[7] = &entities.Technician{ID: 7, TeamID: 3, Name: "Иванов И."}
	id, err := env.requestRepo.CreateRequestInTx(context.Background(), nil, &entities.MaintenanceRequest{
		Subject: "Заявка", Status: constants.StatusInProgress, TeamID: 3, EquipmentID: 10,
	})
	require.NoError(t, err)

	_, err = env.svc.AssignTechnician(context.Background(), id, dto.AssignTechnicianDTO{TechnicianID: 7}, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), env.requestRepo.assignedTo[id])

	require.Len(t, env.logRepo.entries, 1)
	entry := env.logRepo.entries[0]
	require.NotNil(t, entry.OldStatus)
	assert.Equal(t, entry.NewStatus, *entry.OldStatus, "назначение не меняет статус")
	assert.Equal(t, "Assigned to technician Иванов И.", entry.Notes)
}

func TestRequestService_DeleteRequest_CleansAttachmentFiles(t *testing.T) {
	env := newRequestServiceEnv()
	id, err := env.requestRepo.CreateRequestInTx(context.Background(), nil, &entities.MaintenanceRequest{
		Subject: "С вложениями", Status: constants.StatusNew, EquipmentID: 10,
	})
	require.NoError(t, err)

	env.attachmentRepo.byRequest[id] = []entities.Attachment{
		{ID: 1, RequestID: id, FilePath: "requests/a.pdf"},
		{ID: 2, RequestID: id, FilePath: "requests/b.jpg"},
	}

	require.NoError(t, env.svc.DeleteRequest(context.Background(), id))
	assert.ElementsMatch(t, []string{"requests/a.pdf", "requests/b.jpg"}, env.fileStorage.deleted)
	assert.NotContains(t, env.requestRepo.rows, id)
}

// Сбой удаления файла не превращается в ошибку операции.
func TestRequestService_DeleteRequest_FileErrorIsBestEffort(t *testing.T) {
	env := newRequestServiceEnv()
	env.fileStorage.deleteErr = errors.New("диск недоступен")
	id, err := env.requestRepo.CreateRequestInTx(context.Background(), nil, &entities.MaintenanceRequest{
		Subject: "С вложением", Status: constants.StatusNew, EquipmentID: 10,
	})
	require.NoError(t, err)
	env.attachmentRepo.byRequest[id] = []entities.Attachment{{ID: 1, RequestID: id, FilePath: "requests/a.pdf"}}

	assert.NoError(t, env.svc.DeleteRequest(context.Background(), id))
}

func TestRequestService_DeleteRequest_NotFound(t *testing.T) {
	env := newRequestServiceEnv()
	err := env.svc.DeleteRequest(context.Background(), 12345)
	httpErr := requireHttpError(t, err, http.StatusNotFound)
	assert.Equal(t, "заявка не найдена", httpErr.Message)
}
