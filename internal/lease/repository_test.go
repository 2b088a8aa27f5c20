// AngelaMos | 2026
// repository_test.go

package lease

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
)

// Creating a lease against a property or tenant that does not exist
// trips a foreign key; callers must see a validation failure, not a
// bare driver error.
func TestWrapWriteError_ForeignKey(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503"}

	err := wrapWriteError("create lease", fkErr)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestWrapWriteError_PassesOthersThrough(t *testing.T) {
	cause := errors.New("connection reset")

	err := wrapWriteError("update lease", cause)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, core.ErrInvalidInput)

	uniqueErr := &pgconn.PgError{Code: "23505"}
	assert.NotErrorIs(
		t,
		wrapWriteError("create lease", uniqueErr),
		core.ErrInvalidInput,
	)
}
