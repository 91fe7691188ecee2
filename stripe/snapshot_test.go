package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_Restore(t *testing.T) {
	outer := Snapshot()
	t.Cleanup(outer.Restore)

	SetAPIBase("https://api.example.com")
	SetAPIKey("sk_live_original")
	SetClientID("ca_original")

	snap := Snapshot(AttrAPIBase, AttrAPIKey, AttrClientID)

	SetAPIBase("http://localhost:12111")
	SetAPIKey("sk_test_123")
	SetClientID("ca_123")
	SetAPIVersion("2017-04-06")

	snap.Restore()

	assert.Equal(t, "https://api.example.com", APIBase())
	assert.Equal(t, "sk_live_original", APIKey())
	assert.Equal(t, "ca_original", ClientID())
	assert.Equal(t, "2017-04-06", APIVersion(), "attributes outside the snapshot are untouched")
}

func TestSnapshot_RestoreTwice(t *testing.T) {
	outer := Snapshot()
	t.Cleanup(outer.Restore)

	SetAPIKey("sk_test_a")
	snap := Snapshot(AttrAPIKey)

	SetAPIKey("sk_test_b")
	snap.Restore()
	SetAPIKey("sk_test_c")
	snap.Restore()

	assert.Equal(t, "sk_test_a", APIKey())
}

func TestSnapshot_Value(t *testing.T) {
	outer := Snapshot()
	t.Cleanup(outer.Restore)

	SetAPIKey("sk_test_value")
	snap := Snapshot(AttrAPIKey, "bogus")

	v, ok := snap.Value(AttrAPIKey)
	assert.True(t, ok)
	assert.Equal(t, "sk_test_value", v)

	_, ok = snap.Value(AttrAPIBase)
	assert.False(t, ok)

	assert.Equal(t, []Attribute{AttrAPIKey}, snap.Attributes())
}

func TestSnapshot_AllByDefault(t *testing.T) {
	snap := Snapshot()
	assert.Equal(t, Attributes, snap.Attributes())
}
