package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteralPool_DedupReturnsSameLabel(t *testing.T) {
	p := NewLiteralPool(10)
	l1 := p.AddConstant(0x1122334455667788)
	l2 := p.AddConstant(0x1122334455667788)
	require.Equal(t, l1, l2)
	require.Equal(t, 1, p.Len())
	require.Equal(t, 8, p.Size())
}

func TestLiteralPool_DistinctValuesGetDistinctLabels(t *testing.T) {
	p := NewLiteralPool(0)
	l1 := p.AddConstant(1)
	l2 := p.AddConstant(2)
	require.NotEqual(t, l1, l2)
	require.Equal(t, 2, p.Len())
	require.Equal(t, 16, p.Size())
}

func TestLiteralPool_LabelsStartAtFirstLabel(t *testing.T) {
	p := NewLiteralPool(42)
	l := p.AddConstant(7)
	require.Equal(t, uint32(42), l)
}

func TestLiteralPool_Emit(t *testing.T) {
	p := NewLiteralPool(0)
	p.AddConstant(0x0102030405060708)
	buf := NewMachBuffer()
	p.Emit(buf)
	bytes, _ := buf.Finish()
	require.Len(t, bytes, 8)
	require.Equal(t, byte(0x08), bytes[0])
	require.Equal(t, byte(0x01), bytes[7])
}
