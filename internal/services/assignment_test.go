package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/types"
)

type fakeDashboardRepo struct {
	repositories.DashboardRepositoryInterface
	statsForTechnician uint64
}

func (r *fakeDashboardRepo) GetTechnicianStats(_ context.Context, technicianID uint64) (*types.TechnicianStats, error) {
	r.statsForTechnician = technicianID
	return &types.TechnicianStats{TotalCount: 5}, nil
}

type assignmentServiceEnv struct {
	svc            AssignmentServiceInterface
	requestRepo    *fakeRequestRepo
	logRepo        *fakeLogRepo
	technicianRepo *fakeTechnicianRepo
	dashboardRepo  *fakeDashboardRepo
}

// newAssignmentServiceEnv готовит техника с user_id 50 в команде 3.
func newAssignmentServiceEnv() *assignmentServiceEnv {
	env := &assignmentServiceEnv{
		requestRepo: newFakeRequestRepo(),
		logRepo:     &fakeLogRepo{},
		technicianRepo: &fakeTechnicianRepo{
			byID: map[uint64]*entities.Technician{},
			byUserID: map[uint64]*entities.Technician{
				50: {ID: 7, UserID: 50, TeamID: 3, Name: "Иванов И."},
			},
		},
		dashboardRepo: &fakeDashboardRepo{},
	}
	env.svc = NewAssignmentService(
		env.requestRepo, env.logRepo, env.technicianRepo, env.dashboardRepo,
		fakeTxManager{}, zap.NewNop(),
	)
	return env
}

// seedQueueRequest кладет в фейк гидрированную заявку команды team.
func (env *assignmentServiceEnv) seedQueueRequest(teamID uint64, technician *dto.ShortTechnicianDTO) uint64 {
	id := env.requestRepo.nextID
	env.requestRepo.nextID++
	env.requestRepo.rows[id] = &entities.MaintenanceRequest{
		ID: id, Subject: "Заявка", Status: constants.StatusNew, TeamID: teamID, EquipmentID: 10,
	}
	env.requestRepo.hydrate[id] = &dto.RequestDTO{
		ID:         id,
		Subject:    "Заявка",
		Status:     constants.StatusNew,
		Team:       dto.ShortRefDTO{ID: teamID},
		Technician: technician,
	}
	return id
}

func TestAssignmentService_AcceptRequest_NoTechnicianProfile(t *testing.T) {
	env := newAssignmentServiceEnv()
	id := env.seedQueueRequest(3, nil)

	_, err := env.svc.AcceptRequest(context.Background(), 42, id)
	httpErr := requireHttpError(t, err, http.StatusNotFound)
	assert.Equal(t, "technician profile not found", httpErr.Message)
}

func TestAssignmentService_AcceptRequest_RequestNotFound(t *testing.T) {
	env := newAssignmentServiceEnv()

	_, err := env.svc.AcceptRequest(context.Background(), 50, 777)
	httpErr := requireHttpError(t, err, http.StatusNotFound)
	assert.Equal(t, "заявка не найдена", httpErr.Message)
}

func TestAssignmentService_AcceptRequest_ForeignTeam(t *testing.T) {
	env := newAssignmentServiceEnv()
	id := env.seedQueueRequest(99, nil)

	_, err := env.svc.AcceptRequest(context.Background(), 50, id)
	httpErr := requireHttpError(t, err, http.StatusForbidden)
	assert.Equal(t, "this request belongs to a different team", httpErr.Message)
	assert.Empty(t, env.requestRepo.assignedTo)
}

func TestAssignmentService_AcceptRequest_AlreadyTaken(t *testing.T) {
	env := newAssignmentServiceEnv()
	id := env.seedQueueRequest(3, &dto.ShortTechnicianDTO{ID: 8, TeamID: 3, Name: "Петров П."})

	_, err := env.svc.AcceptRequest(context.Background(), 50, id)
	httpErr := requireHttpError(t, err, http.StatusConflict)
	assert.Equal(t, "already assigned to another technician", httpErr.Message)
}

// Предварительная проверка видит свободную заявку, но условный UPDATE
// проигрывает гонку: результат тот же конфликт.
func TestAssignmentService_AcceptRequest_RaceLoser(t *testing.T) {
	env := newAssignmentServiceEnv()
	id := env.seedQueueRequest(3, nil)
	env.requestRepo.claimDenied = true

	_, err := env.svc.AcceptRequest(context.Background(), 50, id)
	httpErr := requireHttpError(t, err, http.StatusConflict)
	assert.Equal(t, "already assigned to another technician", httpErr.Message)
	assert.Empty(t, env.logRepo.entries, "проигранная гонка не пишет в журнал")
}

func TestAssignmentService_AcceptRequest_Success(t *testing.T) {
	env := newAssignmentServiceEnv()
	id := env.seedQueueRequest(3, nil)

	accepted, err := env.svc.AcceptRequest(context.Background(), 50, id)
	require.NoError(t, err)
	require.NotNil(t, accepted)
	assert.Equal(t, uint64(7), env.requestRepo.assignedTo[id])

	require.Len(t, env.logRepo.entries, 1)
	entry := env.logRepo.entries[0]
	require.NotNil(t, entry.OldStatus)
	assert.Equal(t, entry.NewStatus, *entry.OldStatus, "прием не меняет статус")
	assert.Equal(t, "Accepted by technician Иванов И.", entry.Notes)
	require.NotNil(t, entry.ChangedBy)
	assert.Equal(t, uint64(50), *entry.ChangedBy)
}

// Повторный прием своей же заявки идемпотентен и снова журналируется.
func TestAssignmentService_AcceptRequest_IdempotentForOwner(t *testing.T) {
	env := newAssignmentServiceEnv()
	id := env.seedQueueRequest(3, &dto.ShortTechnicianDTO{ID: 7, TeamID: 3, Name: "Иванов И."})

	_, err := env.svc.AcceptRequest(context.Background(), 50, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), env.requestRepo.assignedTo[id])
	assert.Len(t, env.logRepo.entries, 1)
}

func TestAssignmentService_TeamQueue_UsesTechnicianTeam(t *testing.T) {
	env := newAssignmentServiceEnv()

	_, _, err := env.svc.TeamQueue(context.Background(), 50, dto.TeamQueueFilterDTO{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), env.requestRepo.queueTeamID)
}

func TestAssignmentService_TechnicianStats_ResolvesProfile(t *testing.T) {
	env := newAssignmentServiceEnv()

	stats, err := env.svc.TechnicianStats(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalCount)
	assert.Equal(t, uint64(7), env.dashboardRepo.statsForTechnician)

	_, err = env.svc.TechnicianStats(context.Background(), 42)
	requireHttpError(t, err, http.StatusNotFound)
}
