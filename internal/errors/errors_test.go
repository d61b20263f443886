package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewValidationError("record missing invoice id", nil),
			want: "[VALIDATION] record missing invoice id",
		},
		{
			name: "with cause",
			err:  NewParsingError("bad quantity cell", stderrors.New("strconv error")),
			want: "[PARSING] bad quantity cell: strconv error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := NewStorageError("cannot write fact table", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_SentinelWrapping(t *testing.T) {
	err := NewImputationError("category Grocery has no priced records", ErrNoReferenceValues)
	assert.True(t, stderrors.Is(err, ErrNoReferenceValues))

	lift := NewArithmeticError("lift calculation failed", ErrUndefinedLift)
	assert.True(t, stderrors.Is(lift, ErrUndefinedLift))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewImputationError("no reference values", nil).
		WithContext("category", "Grocery").
		WithContext("field", "unit_price")

	assert.Equal(t, "Grocery", err.Context["category"])
	assert.Equal(t, "unit_price", err.Context["field"])
}
