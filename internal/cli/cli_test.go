package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/vat-invoicing/internal/vies"
)

type stubRegistry struct {
	answer vies.RegistryAnswer
	err    error
}

func (s stubRegistry) Lookup(context.Context, string) (vies.RegistryAnswer, error) {
	return s.answer, s.err
}

func run(t *testing.T, opts Options, args ...string) (string, error) {
	t.Helper()
	if opts.Registry == nil {
		opts.Registry = stubRegistry{err: vies.ErrServiceUnavailable}
	}
	opts.Log = zerolog.Nop()

	root := NewRootCommand(opts)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCalc(t *testing.T) {
	out, err := run(t, Options{}, "calc", "99.99")
	require.NoError(t, err)
	assert.Contains(t, out, "21.00%")
	assert.Contains(t, out, "21.00")
	assert.Contains(t, out, "120.99")

	out, err = run(t, Options{}, "calc", "100", "--category", "REDUCED")
	require.NoError(t, err)
	assert.Contains(t, out, "112.00")

	out, err = run(t, Options{}, "calc", "100", "--rate", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "106.00")
}

func TestCalcErrors(t *testing.T) {
	_, err := run(t, Options{}, "calc", "abc")
	assert.Error(t, err)

	_, err = run(t, Options{}, "calc", "0")
	assert.Error(t, err)

	_, err = run(t, Options{}, "calc", "100", "--category", "luxury")
	assert.Error(t, err)

	_, err = run(t, Options{}, "calc")
	assert.Error(t, err)
}

func TestDeduct(t *testing.T) {
	out, err := run(t, Options{}, "deduct", "1000", "--professional", "500", "--investment", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "300.00")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "600.00")

	_, err = run(t, Options{}, "deduct", "-5")
	assert.Error(t, err)
}

func TestRates(t *testing.T) {
	out, err := run(t, Options{}, "rates")
	require.NoError(t, err)
	for _, want := range []string{"standard", "21.00", "12.00", "6.00", "exempt"} {
		assert.Contains(t, out, want)
	}
}

func TestValidate(t *testing.T) {
	out, err := run(t, Options{Registry: stubRegistry{answer: vies.RegistryAnswer{Valid: true, Name: "ACME NV"}}},
		"validate", "BE0123.456.789")
	require.NoError(t, err)
	assert.Contains(t, out, "0123456789")
	assert.Contains(t, out, "valid")
	assert.Contains(t, out, "registry")
	assert.Contains(t, out, "ACME NV")

	out, err = run(t, Options{}, "validate", "BE123")
	require.NoError(t, err)
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "format")

	out, err = run(t, Options{}, "validate", "0123456789", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "format")
	assert.NotContains(t, out, "Registry error")
}
