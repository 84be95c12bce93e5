package panicerr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type haltSignal struct{ error }

func TestRecover(t *testing.T) {
	bang := errors.New("bang")
	for _, tc := range []struct {
		name  string
		do    func() error
		want  string
		wraps error
		how   string // "", "panic", or "exit"
	}{
		{name: "returns nil", do: func() error { return nil }},
		{name: "returns error", do: func() error { return bang }, want: "bang", wraps: nil},
		{name: "panics error", do: func() error { panic(bang) }, want: "panics error paniced: bang", wraps: bang, how: "panic"},
		{name: "panics string", do: func() error { panic("hello") }, want: "panics string paniced: hello", how: "panic"},
		{name: "index out of range", do: func() error {
			var none []int
			_ = none[1]
			return nil
		}, want: "index out of range paniced: runtime error: index out of range [1] with length 0", how: "panic"},
		{name: "goexit", do: func() error { runtime.Goexit(); return nil }, want: "goexit called runtime.Goexit", how: "exit"},
		{name: "", do: func() error { runtime.Goexit(); return nil }, want: "runtime.Goexit called", how: "exit"},
		{name: "", do: func() error { panic(bang) }, want: "paniced: bang", wraps: bang, how: "panic"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Recover(tc.name, tc.do)
			if tc.want == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tc.want)
			if tc.wraps != nil {
				assert.Equal(t, tc.wraps, errors.Unwrap(err), "expected the panic(error) value")
			}
			assert.Equal(t, tc.how == "panic", IsPanic(err), "IsPanic")
			assert.Equal(t, tc.how == "exit", IsExit(err), "IsExit")
			assert.Equal(t, tc.how == "panic", PanicStack(err) != "", "PanicStack")
		})
	}
}

func TestRecover_verboseStack(t *testing.T) {
	err := Recover("", func() error { panic("nope") })
	require.Error(t, err)
	verbose := fmt.Sprintf("%+v", err)
	assert.True(t, strings.HasPrefix(verbose, "paniced: nope\nPanic stack: "))
	assert.True(t, strings.HasSuffix(verbose, PanicStack(err)), "expected verbose format to end with the stack")
}

func TestRecover_typedPanic(t *testing.T) {
	err := Recover("typed", func() error {
		panic(haltSignal{errors.New("too deep")})
	})
	var hs haltSignal
	require.True(t, errors.As(err, &hs), "expected to recover the typed panic value")
	assert.EqualError(t, hs, "too deep")
	assert.True(t, IsPanic(err))
}
