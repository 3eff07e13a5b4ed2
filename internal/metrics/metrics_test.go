package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncShowsInSnapshot(t *testing.T) {
	before := Snapshot()

	Inc(RegisterTotal)
	Inc(RegisterTotal)
	Inc(StoreErrorTotal)

	after := Snapshot()
	assert.Equal(t, before["register"]+2, after["register"])
	assert.Equal(t, before["store_errors"]+1, after["store_errors"])
	assert.Equal(t, before["search"], after["search"])
	assert.Len(t, after, 8)
}
