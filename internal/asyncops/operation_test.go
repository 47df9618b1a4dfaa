package asyncops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationValidate(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		wantErr bool
	}{
		{"exists with path", Exists("/tmp/x"), false},
		{"exists without path", Operation{Kind: KindExists}, true},
		{"stat without path", Operation{Kind: KindStat}, true},
		{"copy with both", Copy("/a", "/b"), false},
		{"copy missing dst", Operation{Kind: KindCopy, Src: "/a"}, true},
		{"move missing src", Operation{Kind: KindMove, Dst: "/b"}, true},
		{"empty batch", Batch(), false},
		{"batch with valid items", Batch(Exists("/a"), Mkdir("/b")), false},
		{"batch with invalid item", Batch(Exists("/a"), Operation{Kind: KindDelete}), true},
		{"nested batch", Batch(Batch(Exists("/a"))), false},
		{"unknown kind", Operation{Kind: Kind(200)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKindText(t *testing.T) {
	for kind, name := range kindNames {
		text, err := kind.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))

		var back Kind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, kind, back)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("teleport")))
}

func TestResultHelpers(t *testing.T) {
	ok := Success(int64(42))
	assert.True(t, ok.IsSuccess())
	assert.False(t, ok.IsTerminalFailure())

	failed := Errorf("stat failed: %s", "missing")
	assert.True(t, failed.IsError())
	assert.True(t, failed.IsTerminalFailure())
	assert.Equal(t, "stat failed: missing", failed.Err)

	assert.True(t, timeoutResult.IsTerminalFailure())
	assert.True(t, cancelledResult.IsTerminalFailure())
	assert.False(t, cancelledResult.IsError())
}
