package automap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("registers converters by target type", func(t *testing.T) {
		r := Build(User_MapConverter{}, Account_MapConverter{})

		assert.Equal(t, 2, r.Len())
		assert.True(t, r.Exists(reflect.TypeOf(User{})))
		assert.True(t, r.Exists(reflect.TypeOf(Account{})))
		assert.False(t, r.Exists(reflect.TypeOf(Orphan{})))
	})

	t.Run("first converter wins on duplicate target", func(t *testing.T) {
		r := Build(User_MapConverter{}, altUserConverter{})

		require.Equal(t, 1, r.Len())
		c, err := r.Converter(reflect.TypeOf(User{}))
		require.NoError(t, err)
		assert.IsType(t, User_MapConverter{}, c)
	})

	t.Run("drops nil converters", func(t *testing.T) {
		r := Build(nil, User_MapConverter{}, nil)

		assert.Equal(t, 1, r.Len())
	})

	t.Run("drops converters without a target type", func(t *testing.T) {
		r := Build(nilTargetConverter{}, User_MapConverter{})

		assert.Equal(t, 1, r.Len())
	})

	t.Run("empty build yields usable registry", func(t *testing.T) {
		r := Build()

		assert.Equal(t, 0, r.Len())
		assert.False(t, r.Exists(reflect.TypeOf(User{})))

		_, err := r.ToMap(&User{})
		assert.True(t, IsNotFoundError(err))
	})
}

func TestRegistryConverter(t *testing.T) {
	r := Build(User_MapConverter{})

	t.Run("pointer type normalizes to element type", func(t *testing.T) {
		c, err := r.Converter(reflect.TypeOf(&User{}))
		require.NoError(t, err)
		assert.IsType(t, User_MapConverter{}, c)
	})

	t.Run("unregistered type reports not found with type name", func(t *testing.T) {
		_, err := r.Converter(reflect.TypeOf(Orphan{}))
		require.Error(t, err)
		assert.True(t, IsNotFoundError(err))
		assert.Contains(t, err.Error(), "Orphan")
	})

	t.Run("nil type is an argument error", func(t *testing.T) {
		_, err := r.Converter(nil)
		assert.True(t, IsInvalidArgumentError(err))
	})
}

func TestRegistryExists(t *testing.T) {
	r := Build(User_MapConverter{})

	assert.True(t, r.Exists(reflect.TypeOf(User{})))
	assert.True(t, r.Exists(reflect.TypeOf(&User{})))
	assert.False(t, r.Exists(reflect.TypeOf(Orphan{})))
	assert.False(t, r.Exists(nil))
}

func TestRegistryConvertersIsACopy(t *testing.T) {
	r := Build(User_MapConverter{})

	snapshot := r.Converters()
	require.Len(t, snapshot, 1)

	delete(snapshot, reflect.TypeOf(User{}))
	assert.Equal(t, 1, r.Len(), "mutating the snapshot must not affect the registry")
}

func TestRegistryRegisteredTypes(t *testing.T) {
	r := Build(User_MapConverter{}, Account_MapConverter{})

	names := r.RegisteredTypes()
	require.Len(t, names, 2)
	assert.Contains(t, names[0], "Account")
	assert.Contains(t, names[1], "User")
}

func TestLoad(t *testing.T) {
	t.Run("missing manifest falls back to full set", func(t *testing.T) {
		r := Load("testdata/does-not-exist.json", User_MapConverter{}, Account_MapConverter{})

		assert.Equal(t, 2, r.Len())
	})

	t.Run("manifest filters converters by generated type name", func(t *testing.T) {
		path := writeTempManifest(t, `{
			"example.com/models.User": "example.com/models.User_MapConverter"
		}`)

		r := Load(path, User_MapConverter{}, Account_MapConverter{})

		assert.Equal(t, 1, r.Len())
		assert.True(t, r.Exists(reflect.TypeOf(User{})))
		assert.False(t, r.Exists(reflect.TypeOf(Account{})))
	})

	t.Run("manifest matching nothing falls back to full set", func(t *testing.T) {
		path := writeTempManifest(t, `{
			"example.com/models.Ghost": "example.com/models.Ghost_MapConverter"
		}`)

		r := Load(path, User_MapConverter{}, Account_MapConverter{})

		assert.Equal(t, 2, r.Len())
	})

	t.Run("blank manifest falls back to full set", func(t *testing.T) {
		path := writeTempManifest(t, "   \n")

		r := Load(path, User_MapConverter{})

		assert.Equal(t, 1, r.Len())
	})

	t.Run("corrupt manifest falls back to full set", func(t *testing.T) {
		path := writeTempManifest(t, "{not json")

		r := Load(path, User_MapConverter{})

		assert.Equal(t, 1, r.Len())
	})

	t.Run("no converters yields empty registry", func(t *testing.T) {
		r := Load("testdata/does-not-exist.json")

		assert.Equal(t, 0, r.Len())
	})
}
