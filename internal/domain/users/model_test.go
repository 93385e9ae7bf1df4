package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperator_DisplayName(t *testing.T) {
	tests := []struct {
		op   Operator
		want string
	}{
		{Operator{FirstName: "Asha", LastName: "Rao", Username: "asha"}, "Asha Rao"},
		{Operator{LastName: "Rao"}, "Rao"},
		{Operator{Username: "asha"}, "@asha"},
		{Operator{}, "operator"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.DisplayName())
	}
	assert.True(t, Operator{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Operator{Role: RoleOperator}.IsAdmin())
}
