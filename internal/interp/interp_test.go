package interp

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

func runSource(t *testing.T, src string) Value {
	t.Helper()
	registry := typeregistry.New()
	lex := lexer.New(src, "interp_test.tess")
	file, errs := parser.Parse(lex, registry, "interp_test.tess")
	require.Empty(t, errs, "parse errors for %q", src)
	it := New(registry)
	v, err := it.Run(file.Node)
	require.NoError(t, err)
	return v
}

func runSourceErr(t *testing.T, src string) error {
	t.Helper()
	registry := typeregistry.New()
	lex := lexer.New(src, "interp_test.tess")
	file, errs := parser.Parse(lex, registry, "interp_test.tess")
	require.Empty(t, errs, "parse errors for %q", src)
	it := New(registry)
	_, err := it.Run(file.Node)
	return err
}

func TestArithmeticResult(t *testing.T) {
	v := runSource(t, "25 + 97;")
	assert.Equal(t, &IntValue{Value: 122}, v)
}

func TestArithmeticPrecedenceLong(t *testing.T) {
	v := runSource(t, "125 * 45 + 24 / (4 + 3) - 5;")
	assert.Equal(t, &IntValue{Value: 5623}, v)
}

func TestArithmeticPrecedenceNested(t *testing.T) {
	v := runSource(t, "2 * (6 * 1 + 2) / 4 * (4 + 1);")
	assert.Equal(t, &IntValue{Value: 20}, v)
}

func TestPrefixIncrement(t *testing.T) {
	v := runSource(t, "int i = 0; ++i;")
	assert.Equal(t, &IntValue{Value: 1}, v)
}

func TestPostfixIncrementReturnsUpdatedValue(t *testing.T) {
	v := runSource(t, "int i = 0; i++; return i;")
	assert.Equal(t, &IntValue{Value: 1}, v)
}

func TestPostfixIncrementExpressionValueIsOld(t *testing.T) {
	v := runSource(t, "int i = 0; i++;")
	assert.Equal(t, &IntValue{Value: 0}, v)
}

func TestArrayLoopSum(t *testing.T) {
	src := `const int size = 8;
int[size] arr;
int total = 0;
for(int i = 0; i < size; ++i) arr[i] = i;
for(int i = 0; i < size; ++i) total = total + arr[i];
return total;`
	v := runSource(t, src)
	assert.Equal(t, &IntValue{Value: 28}, v)
}

func TestCompositeTypeMemberAssignment(t *testing.T) {
	src := `type complex { float i = 0; float j = 0; }
complex z;
z.i = 2.55;
z.j = 2.0 * z.i;
return z.j;`
	v := runSource(t, src)
	fv, ok := v.(*FloatValue)
	require.True(t, ok)
	assert.InDelta(t, 5.1, fv.Value, 0.01)
}

func referenceIsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func TestIsPrimeMatchesReference(t *testing.T) {
	const isPrimeSrc = `function isPrime(int n) : bool {
	if (n < 2) { return false; }
	for (int i = 2; i * i <= n; ++i) {
		if (n % i == 0) { return false; }
	}
	return true;
}
return isPrime(%d);`

	for n := 2; n < 1000; n++ {
		src := fmt.Sprintf(isPrimeSrc, n)
		v := runSource(t, src)
		bv, ok := v.(*BoolValue)
		require.True(t, ok, "n=%d", n)
		assert.Equal(t, referenceIsPrime(n), bv.Value, "n=%d", n)
	}
}

func referenceFib(n int) int {
	if n < 2 {
		return n
	}
	a, b := 0, 1
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

func TestRecursiveFibonacci(t *testing.T) {
	const fibSrc = `function fib(int n) : int {
	if (n < 2) { return n; }
	return fib(n - 1) + fib(n - 2);
}
return fib(%d);`

	for n := 0; n <= 20; n++ {
		src := fmt.Sprintf(fibSrc, n)
		v := runSource(t, src)
		iv, ok := v.(*IntValue)
		require.True(t, ok, "n=%d", n)
		assert.Equal(t, int64(referenceFib(n)), iv.Value, "n=%d", n)
	}
}

func TestPrintBuiltinEmitsEachArgument(t *testing.T) {
	registry := typeregistry.New()
	lex := lexer.New(`print(1, 2, 3);`, "print_test.tess")
	file, errs := parser.Parse(lex, registry, "print_test.tess")
	require.Empty(t, errs)

	var out strings.Builder
	it := New(registry, WithStdout(&out))
	_, err := it.Run(file.Node)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out.String())
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	err := runSourceErr(t, "1 / 0;")
	require.Error(t, err)
	rep, ok := terrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, "RT002", rep.Code)
}

func TestOutOfBoundsArrayAccessIsRuntimeError(t *testing.T) {
	err := runSourceErr(t, "int[4] arr; arr[10] = 1;")
	require.Error(t, err)
	rep, ok := terrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, "RT001", rep.Code)
}

func TestNullPointerDereferenceIsRuntimeError(t *testing.T) {
	err := runSourceErr(t, "int* p; *p;")
	require.Error(t, err)
	rep, ok := terrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, "RT003", rep.Code)
}
