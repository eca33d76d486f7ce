package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "CUSTOMER", want: RoleCustomer},
		{in: "ADMIN", want: RoleAdmin},
		{in: "admin", wantErr: true},
		{in: "", wantErr: true},
		{in: "MANAGER", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRole)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestRoleHome(t *testing.T) {
	assert.Equal(t, "/admin", RoleAdmin.Home())
	assert.Equal(t, "/dashboard", RoleCustomer.Home())
	assert.Equal(t, "/login", Role(0).Home())
}
