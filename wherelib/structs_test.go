package wherelib_test

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pubaddr/whereabouts/wherelib"
)

func TestIDString(t *testing.T) {
	assert.Equal(t, "ipinfo", wherelib.ID{Name: "ipinfo"}.String())
	assert.Equal(t, "mock(11.1.1.1)",
		wherelib.MockID("11.1.1.1", "http://mock.invalid/json").String())
	assert.True(t, wherelib.MockID("11.1.1.1", "").IsMock())
	assert.False(t, wherelib.ID{Name: "ipinfo"}.IsMock())
}

func TestIDJSONRoundtrip(t *testing.T) {
	original := wherelib.MockID("11.1.1.1", "http://mock.invalid/json")

	encoded, err := json.Marshal(original)
	assert.NoError(t, err)

	decoded := wherelib.ID{}
	assert.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, original, decoded)
}

func TestResponseClone(t *testing.T) {
	latitude := 36.7957
	isProxy := true

	original := wherelib.NewResponse(net.ParseIP("23.22.13.113"),
		wherelib.ID{Name: "testbackend"})
	original.Latitude = &latitude
	original.IsProxy = &isProxy

	clone := original.Clone()
	clone.IP[0] = 99
	*clone.Latitude = 0
	*clone.IsProxy = false

	assert.Equal(t, "23.22.13.113", original.IP.String())
	assert.Equal(t, 36.7957, *original.Latitude)
	assert.True(t, *original.IsProxy)
}
