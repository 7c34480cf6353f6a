package hcapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelSelector(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", LabelSelector(nil))
	assert.Equal(t, "", LabelSelector(map[string]string{}))
	assert.Equal(t, "env=prod", LabelSelector(map[string]string{"env": "prod"}))

	// keys are sorted, the same map always yields the same selector
	labels := map[string]string{"role": "worker", "cluster": "test", "env": "prod"}
	want := "cluster=test,env=prod,role=worker"
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, LabelSelector(labels))
	}
}

func TestMergeLabels(t *testing.T) {
	t.Parallel()

	base := map[string]string{"cluster": "test", "env": "dev"}
	override := map[string]string{"env": "prod", "role": "worker"}

	merged := MergeLabels(base, override)
	assert.Equal(t, map[string]string{
		"cluster": "test",
		"env":     "prod",
		"role":    "worker",
	}, merged)

	// inputs untouched
	assert.Equal(t, "dev", base["env"])

	assert.Empty(t, MergeLabels())
	assert.Equal(t, map[string]string{"a": "1"}, MergeLabels(nil, map[string]string{"a": "1"}))
}
