package prefabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadEnemySpec(t *testing.T) {
	spec, err := LoadEnemySpec()
	require.NoError(t, err)
	assert.Equal(t, 8.0, spec.ChaseRange)
	assert.Equal(t, 10.0, spec.Ragdoll.LaunchSpeed)
	assert.Equal(t, 50.0, spec.Ragdoll.MaxExplosionForce)
	assert.Equal(t, 3.0, spec.Ragdoll.ExplosionRadius)
	assert.Len(t, spec.Ragdoll.Parts, 5)
	assert.InDelta(t, 1.0, spec.Weapon.AttackSeconds(), 1e-9)
	assert.NotNil(t, spec.Color.Or(nil))
}

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, 100, spec.Health)
	assert.Greater(t, spec.TargetRange, 0.0)
}

func TestLoadInputSpec(t *testing.T) {
	spec, err := LoadInputSpec()
	require.NoError(t, err)
	assert.Contains(t, spec.Bindings, "jump")
	assert.Equal(t, []string{"Space"}, spec.Bindings["jump"].Keys)
	assert.Equal(t, 0.2, spec.Move.Deadzone)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"idle.tengo", "scripts/idle.tengo", "prefabs/scripts/idle.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "on_tick")
	}

	_, err := LoadScript("missing.tengo")
	assert.Error(t, err)
}

func TestLoadMissingSpec(t *testing.T) {
	_, err := LoadSpec[EnemySpec]("nope.yaml")
	assert.ErrorContains(t, err, "prefabs: load nope.yaml")
}

func TestEnemySpecValidate(t *testing.T) {
	parts := RagdollSpec{Parts: []PartSpec{{Name: "hips", Radius: 0.2, Mass: 1}}}
	cases := []struct {
		name string
		spec EnemySpec
		ok   bool
	}{
		{"valid", EnemySpec{Health: 1, ChaseRange: 5, AttackRange: 1, Ragdoll: parts}, true},
		{"no_health", EnemySpec{ChaseRange: 5, Ragdoll: parts}, false},
		{"attack_beyond_chase", EnemySpec{Health: 1, ChaseRange: 1, AttackRange: 2, Ragdoll: parts}, false},
		{"no_parts", EnemySpec{Health: 1, ChaseRange: 5}, false},
		{"duplicate_part", EnemySpec{Health: 1, ChaseRange: 5, Ragdoll: RagdollSpec{Parts: []PartSpec{
			{Name: "a", Radius: 1, Mass: 1}, {Name: "a", Radius: 1, Mass: 1},
		}}}, false},
		{"massless_part", EnemySpec{Health: 1, ChaseRange: 5, Ragdoll: RagdollSpec{Parts: []PartSpec{{Name: "a", Radius: 1}}}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.spec.Validate()
			if c.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		C *YAMLColor `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`c: "#ff000080"`), &out))
	r, g, b, a := out.C.RGBA()
	assert.NotZero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0x8080), a)

	assert.Error(t, yaml.Unmarshal([]byte(`c: "#ff"`), &out))
}

func TestRelativeName(t *testing.T) {
	assert.Equal(t, "enemy.yaml", relativeName("/work/prefabs/enemy.yaml"))
	assert.Equal(t, "scripts/idle.tengo", relativeName("/work/prefabs/scripts/idle.tengo"))
	assert.Equal(t, "scripts/idle.tengo", relativeName("idle.tengo"))
	assert.Equal(t, "x.yaml", relativeName("x.yaml"))
}
