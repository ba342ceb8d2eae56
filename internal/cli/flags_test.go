package cli

import (
	"strings"
	"testing"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func TestCoordsValue_Set(t *testing.T) {
	var c domain.Coords
	v := newCoordsValue(&c)

	require.NoError(t, v.Set(" 38.72 , -9.14 "))
	assert.Equal(t, domain.Coords{38.72, -9.14}, c)
	assert.Equal(t, "38.72,-9.14", v.String())
	assert.Equal(t, "lat,lng", v.Type())

	for _, bad := range []string{"", "1", "1,2,3", "x,1", "1,y", "-91,0", "0,180.5"} {
		assert.Error(t, newCoordsValue(&c).Set(bad), bad)
	}
}

func TestPositionFlags_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    domain.Coords
		wantErr bool
	}{
		{"at", []string{"--at", "1,2"}, domain.Coords{1, 2}, false},
		{"lat and lng", []string{"--lat", "3", "--lng", "-4"}, domain.Coords{3, -4}, false},
		{"at wins", []string{"--at", "1,2", "--lat", "3", "--lng", "4"}, domain.Coords{1, 2}, false},
		{"only lat", []string{"--lat", "3"}, domain.Coords{}, true},
		{"out of range", []string{"--lat", "95", "--lng", "0"}, domain.Coords{}, true},
		{"none", nil, domain.Coords{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			p := addPositionFlags(fs)
			require.NoError(t, fs.Parse(tt.args))

			got, err := p.resolve()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
