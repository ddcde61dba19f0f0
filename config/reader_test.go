package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/motorcheck/logging"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motorcheck.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestRead(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	t.Setenv("MOTORCHECK_MOTOR_PORT", "4")

	path := writeConfig(t, `{
		"log_level": "debug",
		"log": [{"pattern": "motorcheck.bench.*", "level": "warn"}],
		"cycles": 3,
		"idle_delay_ms": 500,
		"flux_capacitor": true,
		"bench": {
			"motor_port": ${MOTORCHECK_MOTOR_PORT},
			"sensor_port": 12,
			"extra_motor_ports": [1, 2],
			"other_ports": [20],
			"free_speed_rpm": 190.5,
			"sensor_slip": 0.1
		}
	}`)
	cfg, err := Read(context.Background(), path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, cfg.Level(), test.ShouldEqual, logging.DEBUG)
	test.That(t, cfg.Log, test.ShouldResemble, []logging.LoggerPatternConfig{{Pattern: "motorcheck.bench.*", Level: "warn"}})
	test.That(t, cfg.Cycles, test.ShouldEqual, 3)
	test.That(t, cfg.IdleDelay(), test.ShouldEqual, 500*time.Millisecond)
	test.That(t, cfg.UseColor(), test.ShouldBeTrue)
	test.That(t, cfg.Bench, test.ShouldResemble, BenchConfig{
		MotorPort:       4,
		SensorPort:      12,
		ExtraMotorPorts: []int{1, 2},
		OtherPorts:      []int{20},
		FreeSpeedRPM:    190.5,
		SensorSlip:      0.1,
	})

	unused := logs.FilterMessage("config has unused keys")
	test.That(t, unused.Len(), test.ShouldEqual, 1)
	test.That(t, unused.All()[0].ContextMap()["keys"], test.ShouldResemble, []interface{}{"flux_capacitor"})
}

func TestReadErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	_, err := Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"), logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = Read(context.Background(), writeConfig(t, `{"bench": `), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot parse config")

	_, err = Read(context.Background(), writeConfig(t, `{"cycles": "many"}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot decode config")

	path := writeConfig(t, `{"bench": {"motor_port": 22, "sensor_port": 9}}`)
	_, err = Read(context.Background(), path, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bench.motor_port")
	test.That(t, strings.HasPrefix(err.Error(), "error validating"), test.ShouldBeTrue)
}

func TestConfigValidate(t *testing.T) {
	no := false
	for _, tc := range []struct {
		name string
		cfg  Config
		err  string
	}{
		{"empty", Config{}, ""},
		{"no color", Config{Color: &no, Bench: BenchConfig{MotorPort: 1, SensorPort: 21}}, ""},
		{"bad level", Config{LogLevel: "loud"}, "log_level"},
		{"bad pattern", Config{Log: []logging.LoggerPatternConfig{{Pattern: "a..b", Level: "info"}}}, "log.0: invalid pattern"},
		{"bad pattern level", Config{Log: []logging.LoggerPatternConfig{{Pattern: "a.b", Level: "loud"}}}, "log.0"},
		{"negative cycles", Config{Cycles: -1}, "cycles cannot be negative"},
		{"negative idle", Config{IdleDelayMS: -1}, "idle_delay_ms cannot be negative"},
		{"shared port", Config{Bench: BenchConfig{MotorPort: 3, SensorPort: 3}}, "bench.sensor_port: port 3 already used by motor_port"},
		{"extra on sensor", Config{Bench: BenchConfig{SensorPort: 9, ExtraMotorPorts: []int{9}}}, "bench.extra_motor_ports.0"},
		{"other out of range", Config{Bench: BenchConfig{OtherPorts: []int{0}}}, "bench.other_ports.0"},
		{"negative speed", Config{Bench: BenchConfig{FreeSpeedRPM: -1}}, "free_speed_rpm"},
		{"full slip", Config{Bench: BenchConfig{SensorSlip: 1}}, "sensor_slip"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.err == "" {
				test.That(t, err, test.ShouldBeNil)
				return
			}
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.err)
		})
	}

	test.That(t, (&Config{Color: &no}).UseColor(), test.ShouldBeFalse)
	test.That(t, (&Config{}).Level(), test.ShouldEqual, logging.INFO)
	test.That(t, (&Config{}).IdleDelay(), test.ShouldEqual, time.Duration(0))
}
