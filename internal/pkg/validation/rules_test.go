package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string  `validate:"required,notblank"`
	Nickname *string `validate:"omitempty,notblank"`
}

func TestNotBlank(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	blank := "  "
	nick := "al"

	assert.NoError(t, v.Struct(sample{Name: "alice"}))
	assert.NoError(t, v.Struct(sample{Name: "alice", Nickname: &nick}))
	assert.Error(t, v.Struct(sample{Name: " \t"}))
	assert.Error(t, v.Struct(sample{Name: "alice", Nickname: &blank}))
}
