package logging

import (
	"testing"

	"go.viam.com/test"
)

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		pattern string
		isValid bool
	}{
		{"motorcheck.selftest", true},
		{"motorcheck.*", true},
		{"motorcheck.*.motor", true},
		{"*", true},
		{"bench_sim.fake-motor", true},
		{"motorcheck..selftest", false},
		{"motorcheck.selftest.", false},
		{".motorcheck", false},
		{"motorcheck.**", false},
		{"_.motorcheck", false},
		{"motorcheck.-", false},
	} {
		test.That(t, ValidatePattern(tc.pattern), test.ShouldEqual, tc.isValid)
	}
}

func TestRegistryUpdateConfig(t *testing.T) {
	registry := NewRegistry(INFO)
	for _, name := range []string{"motorcheck", "motorcheck.selftest", "motorcheck.bench.motor", "motorcheck.bench.encoder"} {
		registry.Register(name, NewBlankLogger(name))
	}
	test.That(t, registry.Names(), test.ShouldResemble,
		[]string{"motorcheck", "motorcheck.bench.encoder", "motorcheck.bench.motor", "motorcheck.selftest"})

	logger := NewTestLogger(t)
	err := registry.UpdateConfig([]LoggerPatternConfig{
		{Pattern: "motorcheck.bench.*", Level: "debug"},
		{Pattern: "motorcheck.bench.encoder", Level: "error"},
		{Pattern: "motorcheck..bad", Level: "debug"},
	}, logger)
	test.That(t, err, test.ShouldBeNil)

	expected := map[string]Level{
		"motorcheck":               INFO,
		"motorcheck.selftest":      INFO,
		"motorcheck.bench.motor":   DEBUG,
		"motorcheck.bench.encoder": ERROR,
	}
	for name, level := range expected {
		l, ok := registry.LoggerNamed(name)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, l.GetLevel(), test.ShouldEqual, level)
	}

	t.Run("late registration picks up patterns", func(t *testing.T) {
		l := registry.Register("motorcheck.bench.board", NewBlankLogger("board"))
		test.That(t, l.GetLevel(), test.ShouldEqual, DEBUG)
	})

	t.Run("existing logger wins", func(t *testing.T) {
		first, _ := registry.LoggerNamed("motorcheck.selftest")
		got := registry.Register("motorcheck.selftest", NewBlankLogger("other"))
		test.That(t, got, test.ShouldEqual, first)
	})

	t.Run("bad level", func(t *testing.T) {
		err := registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "*", Level: "loud"}}, logger)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("empty config resets to default", func(t *testing.T) {
		test.That(t, registry.UpdateConfig(nil, logger), test.ShouldBeNil)
		l, _ := registry.LoggerNamed("motorcheck.bench.motor")
		test.That(t, l.GetLevel(), test.ShouldEqual, INFO)
	})
}
