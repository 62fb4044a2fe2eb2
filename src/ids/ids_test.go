package ids_test

import (
	"testing"

	"itasset/src/ids"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoundTrip(t *testing.T) {
	userID, err := ids.Generate(ids.User, "")
	require.NoError(t, err)
	require.True(t, ids.Validate(userID, ids.User))

	containerID, err := ids.Generate(ids.Container, userID)
	require.NoError(t, err)
	require.True(t, ids.Validate(containerID, ids.Container))

	typeID, err := ids.Generate(ids.AssetType, containerID)
	require.NoError(t, err)
	require.True(t, ids.Validate(typeID, ids.AssetType))

	subTypeID, err := ids.Generate(ids.SubType, typeID)
	require.NoError(t, err)
	require.True(t, ids.Validate(subTypeID, ids.SubType))

	fieldID, err := ids.Generate(ids.Field, subTypeID)
	require.NoError(t, err)
	require.True(t, ids.Validate(fieldID, ids.Field))

	assetID, err := ids.Generate(ids.Asset, containerID)
	require.NoError(t, err)
	require.True(t, ids.Validate(assetID, ids.Asset))

	// Parsing any generated id recovers every ancestor prefix.
	ancestry := ids.Parse(fieldID)
	assert.Equal(t, userID, ancestry[ids.User])
	assert.Equal(t, containerID, ancestry[ids.Container])
	assert.Equal(t, typeID, ancestry[ids.AssetType])
	assert.Equal(t, subTypeID, ancestry[ids.SubType])
	assert.Equal(t, fieldID, ancestry[ids.Field])

	ancestry = ids.Parse(assetID)
	assert.Equal(t, containerID, ancestry[ids.Container])
	assert.Equal(t, assetID, ancestry[ids.Asset])
}

func TestGenerateRejectsWrongParent(t *testing.T) {
	tests := []struct {
		name     string
		kind     ids.Kind
		parentID string
	}{
		{"container under container", ids.Container, "u-abc-c-def"},
		{"asset type under user", ids.AssetType, "u-abc"},
		{"subtype under container", ids.SubType, "u-abc-c-def"},
		{"field under container", ids.Field, "u-abc-c-def"},
		{"asset under asset type", ids.Asset, "u-abc-c-def-t-ghi"},
		{"user with parent", ids.User, "u-abc"},
		{"empty parent", ids.Asset, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ids.Generate(tt.kind, tt.parentID)
			require.Error(t, err)
			var malformed *ids.MalformedIDError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		kind  ids.Kind
		valid bool
	}{
		{"user", "u-abc123", ids.User, true},
		{"container", "u-abc-c-def", ids.Container, true},
		{"asset type", "u-abc-c-def-t-ghi", ids.AssetType, true},
		{"subtype", "u-abc-c-def-t-ghi-s-jkl", ids.SubType, true},
		{"field under type", "u-abc-c-def-t-ghi-f-mno", ids.Field, true},
		{"field under subtype", "u-abc-c-def-t-ghi-s-jkl-f-mno", ids.Field, true},
		{"asset", "u-abc-c-def-a-pqr", ids.Asset, true},

		// Missing a required trailing segment.
		{"container where type expected", "u-abc-c-def", ids.AssetType, false},
		{"user where container expected", "u-abc", ids.Container, false},
		{"type where subtype expected", "u-abc-c-def-t-ghi", ids.SubType, false},

		// Extra segments.
		{"type where container expected", "u-abc-c-def-t-ghi", ids.Container, false},
		{"asset where container expected", "u-abc-c-def-a-pqr", ids.Container, false},

		// Invalid characters.
		{"underscore in token", "u-ab_c-c-def", ids.Container, false},
		{"dot in token", "u-abc-c-d.ef", ids.Container, false},
		{"unicode in token", "u-abc-c-déftoken", ids.Container, false},
		{"empty token", "u--c-def", ids.Container, false},

		// Wrong marker ordering.
		{"container before user", "c-def-u-abc", ids.Container, false},
		{"subtype without type", "u-abc-c-def-s-jkl", ids.SubType, false},
		{"asset nested under type", "u-abc-c-def-t-ghi-a-pqr", ids.Asset, false},

		{"empty id", "", ids.Container, false},
		{"unknown kind", "u-abc", ids.Kind("bogus"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ids.Validate(tt.id, tt.kind))
		})
	}
}

func TestParseFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want ids.Ancestry
	}{
		{"empty", "", ids.Ancestry{}},
		{"garbage", "!!!", ids.Ancestry{}},
		{"wrong leading marker", "c-def", ids.Ancestry{}},
		{
			"truncated tail kept out",
			"u-abc-c",
			ids.Ancestry{ids.User: "u-abc"},
		},
		{
			"invalid tail token",
			"u-abc-c-d!f",
			ids.Ancestry{ids.User: "u-abc"},
		},
		{
			"subtype jumped over type",
			"u-abc-c-def-s-jkl",
			ids.Ancestry{ids.User: "u-abc", ids.Container: "u-abc-c-def"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids.Parse(tt.id))
		})
	}
}

func TestTokenUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok := ids.NewToken()
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token %q", tok)
		seen[tok] = struct{}{}
	}
}
