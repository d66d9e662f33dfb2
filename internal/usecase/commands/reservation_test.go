//go:build unit

package commands_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"resort-reservations/internal/domain/reservation"
	reqdto "resort-reservations/internal/handler/dto/request"
	"resort-reservations/internal/infra"
	"resort-reservations/internal/infra/sqlc"
	"resort-reservations/internal/pkg/clock"
	"resort-reservations/internal/usecase/commands"
	"resort-reservations/internal/usecase/shared"
	"resort-reservations/tests/common/builder"
	queriesmock "resort-reservations/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubRepo replaces the pgx-backed repository so use case tests can script
// insert failures and observe the code passed on each attempt.
type stubRepo struct {
	createErrs   []error
	createdCodes []reservation.ConfirmationCode

	findRes *reservation.Reservation
	findErr error

	updateCalled bool
}

func (s *stubRepo) Create(_ context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	attempt := len(s.createdCodes)
	s.createdCodes = append(s.createdCodes, res.Code())
	if attempt < len(s.createErrs) && s.createErrs[attempt] != nil {
		return nil, s.createErrs[attempt]
	}
	return res, nil
}

func (s *stubRepo) FindByID(context.Context, uuid.UUID) (*reservation.Reservation, error) {
	return s.findRes, s.findErr
}

func (s *stubRepo) LockResource(context.Context, string) error { return nil }

func (s *stubRepo) FindConflicts(context.Context, string, reservation.StayPeriod, *uuid.UUID) ([]*reservation.Reservation, error) {
	return nil, nil
}

func (s *stubRepo) UpdateFields(context.Context, uuid.UUID, shared.ReservationChanges) (*reservation.Reservation, error) {
	s.updateCalled = true
	return s.findRes, nil
}

func (s *stubRepo) SaveState(_ context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	return res, nil
}

func (s *stubRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubTx struct{ repo *stubRepo }

func (t *stubTx) Reservations() shared.ReservationRepository { return t.repo }
func (t *stubTx) DB() sqlc.DBTX                              { return nil }

type stubUoW struct{ tx *stubTx }

func (u *stubUoW) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(context.Context, sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func newUseCase(t *testing.T, repo *stubRepo) (commands.ReservationCommands, *queriesmock.MockReservationQueries) {
	t.Helper()
	ctrl := gomock.NewController(t)
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	mockQueries := queriesmock.NewMockReservationQueries(ctrl)
	factory := reservation.NewFactory(
		clock.NewMockClock(now),
		reservation.NewCodeGenerator(rand.New(rand.NewPCG(1, 2))),
	)
	uc := commands.NewReservationUseCase(&stubUoW{tx: &stubTx{repo: repo}}, factory, mockQueries, clock.NewMockClock(now))
	return uc, mockQueries
}

func TestCreateReservationCodeRetry(t *testing.T) {
	ctx := context.Background()
	req := builder.NewReservationBuilder().BuildCreateRequestDTO()
	dupErr := infra.RepositoryError{Kind: infra.KindDuplicateKey}

	t.Run("re-rolls the code after a duplicate-key insert", func(t *testing.T) {
		repo := &stubRepo{createErrs: []error{dupErr, dupErr, nil}}
		uc, mockQueries := newUseCase(t, repo)
		mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(builder.NewReservationBuilder().BuildViewQuery(), nil).Times(1)

		view, err := uc.CreateReservation(ctx, req, uuid.New())
		require.NoError(t, err)
		require.NotNil(t, view)

		require.Len(t, repo.createdCodes, 3)
		assert.NotEqual(t, repo.createdCodes[0], repo.createdCodes[1])
		assert.NotEqual(t, repo.createdCodes[1], repo.createdCodes[2])
	})

	t.Run("gives up after exhausting code attempts", func(t *testing.T) {
		repo := &stubRepo{createErrs: []error{dupErr, dupErr, dupErr}}
		uc, _ := newUseCase(t, repo)

		_, err := uc.CreateReservation(ctx, req, uuid.New())
		assert.ErrorIs(t, err, commands.ErrDatabaseOperationFailed)
		assert.Len(t, repo.createdCodes, 3)
	})

	t.Run("exclusion violation maps to unavailability without retrying", func(t *testing.T) {
		repo := &stubRepo{createErrs: []error{infra.RepositoryError{Kind: infra.KindConflict}}}
		uc, _ := newUseCase(t, repo)

		_, err := uc.CreateReservation(ctx, req, uuid.New())
		assert.ErrorIs(t, err, commands.ErrResourceUnavailable)
		assert.Len(t, repo.createdCodes, 1)
	})
}

func TestUpdateReservationCheckOrder(t *testing.T) {
	ctx := context.Background()
	invalidCount := int32(0)

	t.Run("missing reservation wins over an invalid payload", func(t *testing.T) {
		repo := &stubRepo{findErr: infra.RepositoryError{Kind: infra.KindNotFound}}
		uc, _ := newUseCase(t, repo)

		_, err := uc.UpdateReservation(ctx, uuid.New(), reqdto.UpdateReservationRequest{GuestCount: &invalidCount})
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
		assert.NotErrorIs(t, err, commands.ErrInvalidGuestCount)
	})

	t.Run("finalized reservation wins over an invalid payload", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		staffID := uuid.New()
		require.NoError(t, res.Confirm())
		require.NoError(t, res.CheckIn(staffID, time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC)))
		require.NoError(t, res.CheckOut(staffID, time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)))

		repo := &stubRepo{findRes: res}
		uc, _ := newUseCase(t, repo)

		_, err = uc.UpdateReservation(ctx, res.ID(), reqdto.UpdateReservationRequest{GuestCount: &invalidCount})
		assert.ErrorIs(t, err, commands.ErrInvalidStatusForModification)
		assert.NotErrorIs(t, err, commands.ErrInvalidGuestCount)
	})

	t.Run("invalid guest count still rejected when modifiable", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		repo := &stubRepo{findRes: res}
		uc, _ := newUseCase(t, repo)

		_, err = uc.UpdateReservation(ctx, res.ID(), reqdto.UpdateReservationRequest{GuestCount: &invalidCount})
		assert.ErrorIs(t, err, commands.ErrInvalidGuestCount)
		assert.False(t, repo.updateCalled)
	})
}
