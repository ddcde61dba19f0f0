package logging

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

type portStatus struct {
	Port  int
	Class string
	note  string
}

// assertLogMatches fuzzy matches a console log line. It checks the time parses, then expects
// an exact match on level, logger name, filename and message. Line numbers only need to be
// numbers.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))

	_, err = time.Parse(DefaultTimeFormatStr, actualParts[0])
	test.That(t, err, test.ShouldBeNil)
	// Level and logger name.
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])
	test.That(t, actualParts[2], test.ShouldEqual, expectedParts[2])

	actualFilename, actualLineNumber, found := strings.Cut(actualParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualParts[4], test.ShouldEqual, expectedParts[4])
	if len(actualParts) == 5 {
		return
	}

	// Field order is stable but compare as maps to keep the expectation readable.
	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[5]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[5]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func newBufferLogger(level Level) (*impl, *bytes.Buffer) {
	notStdout := &bytes.Buffer{}
	return &impl{"motorcheck", NewAtomicLevelAt(level), true, []Appender{NewWriterAppender(notStdout)}}, notStdout
}

func TestConsoleOutputFormat(t *testing.T) {
	logger, notStdout := newBufferLogger(DEBUG)

	logger.Info("In Initialize")
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tINFO\tmotorcheck\tlogging/impl_test.go:70\tIn Initialize")

	logger.Debugf("Port %02d has device class %s", 3, "motor")
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tDEBUG\tmotorcheck\tlogging/impl_test.go:74\tPort 03 has device class motor")

	logger.Infow("resolved", "motor_port", 3, "sensor_port", 9)
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tINFO\tmotorcheck\tlogging/impl_test.go:78\tresolved\t{\"motor_port\":3,\"sensor_port\":9}")

	// Unexported fields are not serialized.
	logger.Warnw("port", "status", portStatus{Port: 9, Class: "rotation", note: "hidden"})
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tWARN\tmotorcheck\tlogging/impl_test.go:83\tport\t{\"status\":{\"Port\":9,\"Class\":\"rotation\"}}")

	logger.Errorw("unpaired", "key")
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tERROR\tmotorcheck\tlogging/impl_test.go:87\tunpaired\t{\"key\":\"unpaired log key\"}")
}

func TestLevels(t *testing.T) {
	logger, notStdout := newBufferLogger(ERROR)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warnf("dropped %d", 1)
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Alwaysf("Motor tracked position matched? %s", "PASS")
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tINFO\tmotorcheck\tlogging/impl_test.go:100\tMotor tracked position matched? PASS")

	logger.SetLevel(INFO)
	test.That(t, logger.GetLevel(), test.ShouldEqual, INFO)
	logger.Info("kept")
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tINFO\tmotorcheck\tlogging/impl_test.go:106\tkept")
}

func TestSublogger(t *testing.T) {
	logger, notStdout := newBufferLogger(INFO)
	sub := logger.Sublogger("selftest")
	test.That(t, sub.GetLevel(), test.ShouldEqual, INFO)

	sub.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, INFO)

	sub.Debug("sampled")
	assertLogMatches(t, notStdout,
		"2026-10-16T09:12:09.459Z\tDEBUG\tmotorcheck.selftest\tlogging/impl_test.go:119\tsampled")
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"Warn", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.input)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
		test.That(t, level.AsZap().String(), test.ShouldEqual, strings.ToLower(tc.expected.String()))
	}

	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "verbose")
}

func TestObservedTestLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Infof("Waiting for motor to be plugged in")
	logger.Always("REPORT:")

	test.That(t, logs.FilterMessageSnippet("Waiting").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterLevelExact(zapcore.InfoLevel).Len(), test.ShouldEqual, 2)
}
