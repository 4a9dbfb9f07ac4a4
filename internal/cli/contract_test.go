package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/config"
)

func TestContractStoreURL(t *testing.T) {
	const (
		liveURL = "mongodb://localhost:27017/blog"
		testURL = "mongodb://localhost:27017/blog-test"
	)

	tests := []struct {
		name           string
		cfg            config.ClientEnvironment
		useDatabaseURL bool
		want           string
		wantErr        string
	}{
		{
			name: "test store preferred",
			cfg:  config.ClientEnvironment{DatabaseURL: liveURL, TestDatabaseURL: testURL},
			want: testURL,
		},
		{
			name:           "test store preferred even with the opt in",
			cfg:            config.ClientEnvironment{DatabaseURL: liveURL, TestDatabaseURL: testURL},
			useDatabaseURL: true,
			want:           testURL,
		},
		{
			name:    "refuses the live store without the opt in",
			cfg:     config.ClientEnvironment{DatabaseURL: liveURL},
			wantErr: "TEST_DATABASE_URL is not set",
		},
		{
			name:           "live store with the opt in",
			cfg:            config.ClientEnvironment{DatabaseURL: liveURL},
			useDatabaseURL: true,
			want:           liveURL,
		},
		{
			name:           "nothing configured",
			useDatabaseURL: true,
			wantErr:        "DATABASE_URL is not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contractStoreURL(&tt.cfg, tt.useDatabaseURL)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
