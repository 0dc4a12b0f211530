package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNested struct {
	ClientID string `mapstructure:"client_id" validate:"required"`
	DaysBack int    `mapstructure:"days_back" validate:"min=1,max=365"`
}

type testRoot struct {
	API testNested `mapstructure:"api"`
}

func TestNew_ReportsMapstructureTagNames(t *testing.T) {
	t.Parallel()

	validate := New()

	err := validate.Struct(&testRoot{API: testNested{DaysBack: 400}})
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, ve, 2)

	assert.Equal(t, "client_id", ve[0].Field())
	assert.Equal(t, "testRoot.api.client_id", ve[0].Namespace())
	assert.Equal(t, "days_back", ve[1].Field())
	assert.Equal(t, "max", ve[1].Tag())
}
