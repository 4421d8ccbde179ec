package identity

import (
	crand "crypto/rand"
	"errors"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const thisPackage = "github.com/specialistvlad/aspectgo/internal/identity"

type widget struct{}

func (w *widget) Spin() {}

func (w widget) Stop() {}

func helper() {}

func TestOf(t *testing.T) {
	w := &widget{}

	testCases := []struct {
		name     string
		fn       any
		expected Identity
	}{
		{name: "free function", fn: helper, expected: Function(thisPackage, "helper")},
		{name: "pointer method expression", fn: (*widget).Spin, expected: Method(thisPackage, "widget", "Spin")},
		{name: "value method expression", fn: widget.Stop, expected: Method(thisPackage, "widget", "Stop")},
		{name: "method value", fn: w.Spin, expected: Method(thisPackage, "widget", "Spin")},
		{name: "exported function", fn: Parse, expected: Function(thisPackage, "Parse")},
		{name: "standard library function", fn: mrand.Intn, expected: Function("math/rand", "Intn")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Of(tc.fn)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)

			again, err := Of(tc.fn)
			require.NoError(t, err)
			assert.Equal(t, id, again, "identity must be stable across lookups")
		})
	}
}

func TestOfKeepsImportPath(t *testing.T) {
	mathInt, err := Of(mrand.Int)
	require.NoError(t, err)
	cryptoInt, err := Of(crand.Int)
	require.NoError(t, err)

	assert.Equal(t, Function("math/rand", "Int"), mathInt)
	assert.Equal(t, Function("crypto/rand", "Int"), cryptoInt)
	assert.NotEqual(t, mathInt, cryptoInt, "same-named packages must not share identities")
	assert.Equal(t, mathInt.Short(), cryptoInt.Short(), "the display form may collide")

	parsed, err := Parse(cryptoInt.String())
	require.NoError(t, err)
	assert.Equal(t, cryptoInt, parsed)
}

func TestOfRejectsUnnamed(t *testing.T) {
	_, err := Of(func() {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAnonymous))

	_, err = Of(nil)
	assert.Error(t, err)

	_, err = Of(42)
	assert.Error(t, err)

	var nilFn func()
	_, err = Of(nilFn)
	assert.Error(t, err)
}

func TestFromSymbol(t *testing.T) {
	id, err := fromSymbol("github.com/acme/shapes.(*Canvas).MoveBy-fm")
	require.NoError(t, err)
	assert.Equal(t, Method("github.com/acme/shapes", "Canvas", "MoveBy"), id)

	id, err = fromSymbol("github.com/acme/shapes.Map[...]")
	require.NoError(t, err)
	assert.Equal(t, Function("github.com/acme/shapes", "Map"), id)

	id, err = fromSymbol("main.run")
	require.NoError(t, err)
	assert.Equal(t, Function("main", "run"), id)

	_, err = fromSymbol("github.com/acme/shapes.Run.func1.2")
	assert.ErrorIs(t, err, ErrAnonymous)
}
