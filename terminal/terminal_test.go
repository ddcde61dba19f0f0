package terminal

import (
	"bytes"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestParse(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		test.That(t, Parse("REPORT:"), test.ShouldResemble, []Segment{{Text: "REPORT:"}})
		test.That(t, Parse(""), test.ShouldBeEmpty)
	})

	t.Run("colored span mid line", func(t *testing.T) {
		segs := Parse("Found motor 3 but #ff0000 could not find sensor#")
		test.That(t, segs, test.ShouldResemble, []Segment{
			{Text: "Found motor 3 but "},
			{Text: "could not find sensor", Color: Red},
		})
	})

	t.Run("several spans", func(t *testing.T) {
		segs := Parse("TEST 1 - #0000ff FORWARD# performance #00FF00 PASS#")
		test.That(t, segs, test.ShouldResemble, []Segment{
			{Text: "TEST 1 - "},
			{Text: "FORWARD", Color: Blue},
			{Text: " performance "},
			{Text: "PASS", Color: Green},
		})
	})

	t.Run("literal markers", func(t *testing.T) {
		test.That(t, Parse("port #3"), test.ShouldResemble, []Segment{{Text: "port #3"}})
		test.That(t, Parse("#zzzzzz text#"), test.ShouldResemble, []Segment{{Text: "#zzzzzz text#"}})
	})

	t.Run("unterminated span", func(t *testing.T) {
		test.That(t, Parse("#ff8000 Please connect both"), test.ShouldResemble, []Segment{
			{Text: "Please connect both", Color: Orange},
		})
	})
}

func TestStripAndColorize(t *testing.T) {
	line := "Motor tracked position matched? " + Colorize(Green, "PASS")
	test.That(t, line, test.ShouldEqual, "Motor tracked position matched? #00ff00 PASS#")
	test.That(t, Strip(line), test.ShouldEqual, "Motor tracked position matched? PASS")
}

func TestSegmentRGB(t *testing.T) {
	r, g, b := Segment{Color: Orange}.RGB()
	test.That(t, []int{r, g, b}, test.ShouldResemble, []int{255, 128, 0})
	r, g, b = Segment{}.RGB()
	test.That(t, []int{r, g, b}, test.ShouldResemble, []int{0, 0, 0})
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	plain := NewConsole(&buf, false)
	plain.Print("Using motor %d and sensor %d", 3, 9)
	plain.Print("%s", Colorize(Red, "FAIL"))
	test.That(t, buf.String(), test.ShouldEqual, "Using motor 3 and sensor 9\nFAIL\n")

	colored := NewConsole(&buf, true)
	rendered := colored.Render("x " + Colorize(Red, "FAIL"))
	test.That(t, rendered, test.ShouldStartWith, "x \x1b[")
	test.That(t, rendered, test.ShouldContainSubstring, "38;2;255;0;0")
	test.That(t, strings.Contains(rendered, "#"), test.ShouldBeFalse)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.Print("TEST %d - %s performance", 2, Colorize(Blue, "REVERSE"))
	test.That(t, rec.Lines(), test.ShouldResemble, []string{"TEST 2 - #0000ff REVERSE# performance"})
	Discard.Print("dropped %d", 1)
}
