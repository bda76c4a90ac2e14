package cache

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEveryWriteOpHasKeys(t *testing.T) {
	ops := []WriteOp{
		OpCreateReservation, OpUpdateStatus, OpExpireReservation,
		OpRecordPayment, OpCreateLocation, OpUpdateLocation, OpDeleteLocation,
	}
	for _, op := range ops {
		keys := AffectedKeys(op, Scope{UserID: 1})
		assert.NotEmpty(t, keys, "op %s maps to no keys", op)
	}
}

func TestReservationWritesTouchBothDashboards(t *testing.T) {
	keys := AffectedKeys(OpCreateReservation, Scope{UserID: 42})
	assert.Equal(t, []string{"userdashboard:42", "admindashboard:global"}, keys)
}

func TestLocationWritesTouchOnlyAdminDashboard(t *testing.T) {
	for _, op := range []WriteOp{OpCreateLocation, OpUpdateLocation, OpDeleteLocation} {
		keys := AffectedKeys(op, Scope{})
		assert.Equal(t, []string{AdminDashboardKey}, keys, "op %s", op)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, any) (bool, error) { return false, nil }
func (failingStore) Set(context.Context, string, any, time.Duration) error {
	return nil
}
func (failingStore) Delete(context.Context, ...string) error {
	return stderrors.New("connection refused")
}

func TestInvalidateSwallowsStoreErrors(t *testing.T) {
	inv := NewInvalidator(failingStore{}, zap.NewNop())
	// Must not panic or propagate; the write already committed.
	inv.Invalidate(context.Background(), OpCreateReservation, Scope{UserID: 1})
}
