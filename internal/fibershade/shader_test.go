package fibershade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allShaders(t *testing.T) []Shader {
	t.Helper()
	kk, err := NewKajiyaKayShader(Vec{Z: 1}, 25, 0.3, 0.3)
	require.NoError(t, err)
	m, err := NewMarschnerShader(Vec{Z: 1}, DefaultFiberParams())
	require.NoError(t, err)
	return []Shader{NewSpecularShader(5), kk, m}
}

func TestKindNames(t *testing.T) {
	for _, k := range []Kind{KindSpecular, KindKajiyaKay, KindMarschner} {
		got, err := KindFromName(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := KindFromName("phong")
	assert.Error(t, err)
	assert.Equal(t, "invalid", Kind(42).String())
}

func TestShaderKinds(t *testing.T) {
	want := []Kind{KindSpecular, KindKajiyaKay, KindMarschner}
	for i, s := range allShaders(t) {
		assert.Equal(t, want[i], s.Kind())
		assert.Contains(t, Describe(s), want[i].String())
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewSpecularShader(5)
	c := Snapshot(s).(*SpecularShader)
	s.SetSpecFactor(1)
	assert.Equal(t, 5.0, c.SpecFactor())

	m, err := NewMarschnerShader(Vec{Z: 1}, DefaultFiberParams())
	require.NoError(t, err)
	mc := Snapshot(m).(*MarschnerShader)
	p := m.Params()
	p.IntensityR = 0
	m.SetParams(p)
	assert.Equal(t, 5.0, mc.Params().IntensityR)
}

// Sample must be finite, non-negative and repeatable for every variant.
func TestSampleContract(t *testing.T) {
	n := Vec{Y: 1}
	dirs := []Vec{
		{Y: 1}, {X: 1}, {Z: 1}, {Z: -1}, {X: -1, Y: 0.2}, {X: 1, Y: 1, Z: 1},
		{X: 0.3, Y: -0.9, Z: 0.1}, {Y: -1}, {}, {X: 1e-300}, {X: 1e300, Y: 1e300},
	}
	for _, s := range allShaders(t) {
		for _, l := range dirs {
			for _, v := range dirs {
				a := s.Sample(l, v, n)
				b := s.Sample(l, v, n)
				assert.True(t, isFinite(a), "%s l=%v v=%v", s.Kind(), l, v)
				assert.GreaterOrEqual(t, a, 0.0)
				assert.Equal(t, a, b)
			}
		}
	}
}
