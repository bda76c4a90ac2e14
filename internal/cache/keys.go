package cache

import "fmt"

// WriteOp names a write path that changes the inputs of a cached aggregate.
// Every writer passes its op to the Invalidator instead of hand-picking
// keys, so a new write path only needs one entry in the table below.
type WriteOp string

const (
	OpCreateReservation WriteOp = "reservation.create"
	OpUpdateStatus      WriteOp = "reservation.update_status"
	OpExpireReservation WriteOp = "reservation.expire"
	OpRecordPayment     WriteOp = "payment.record"
	OpCreateLocation    WriteOp = "location.create"
	OpUpdateLocation    WriteOp = "location.update"
	OpDeleteLocation    WriteOp = "location.delete"
)

// Scope identifies whose derived data a write touched.
type Scope struct {
	UserID int
}

// UserDashboardKey returns the cache key of a user's dashboard snapshot.
func UserDashboardKey(userID int) string {
	return fmt.Sprintf("userdashboard:%d", userID)
}

// AdminDashboardKey is the cache key of the global admin dashboard snapshot.
const AdminDashboardKey = "admindashboard:global"

type keyFn func(Scope) string

func userKey(s Scope) string { return UserDashboardKey(s.UserID) }
func adminKey(Scope) string  { return AdminDashboardKey }

// invalidations is the declarative dependency table: write operation to the
// cache keys whose inputs it changes. Reservation and payment writes move
// both the owning user's numbers and the global admin counters; lot writes
// only show up on the admin side.
var invalidations = map[WriteOp][]keyFn{
	OpCreateReservation: {userKey, adminKey},
	OpUpdateStatus:      {userKey, adminKey},
	OpExpireReservation: {userKey, adminKey},
	OpRecordPayment:     {userKey, adminKey},
	OpCreateLocation:    {adminKey},
	OpUpdateLocation:    {adminKey},
	OpDeleteLocation:    {adminKey},
}

// AffectedKeys resolves the table entry for op against the given scope.
func AffectedKeys(op WriteOp, scope Scope) []string {
	fns := invalidations[op]
	keys := make([]string, 0, len(fns))
	for _, fn := range fns {
		keys = append(keys, fn(scope))
	}
	return keys
}
