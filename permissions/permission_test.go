package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{name: "requirements are public", path: "/v1/bookings/requirements/{listingId}", method: "GET", skip: true},
		{name: "create is for customers", path: "/v1/bookings/", method: "POST", roles: []string{"customer"}},
		{name: "status is for vendors and admins", path: "/v1/bookings/{id}/status", method: "PATCH", roles: []string{"vendor", "admin"}},
		{name: "accept is for customers", path: "/v1/booking/offers/{offerId}/accept", method: "PATCH", roles: []string{"customer"}},
		{name: "offer is for vendors", path: "/v1/booking/offer", method: "POST", roles: []string{"vendor"}},
		{name: "unknown route", path: "/v1/nowhere", method: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, got.Skip)
			assert.ElementsMatch(t, tt.roles, got.Permissions)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("duplicate route", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/a","method":"GET"},{"path":"/a","method":"GET"}]}`))

		assert.ErrorContains(t, err, "duplicate")
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/a","method":"GET","permissions":["root"]}]}`))

		assert.ErrorContains(t, err, "unknown role")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{`))

		assert.Error(t, err)
	})
}
