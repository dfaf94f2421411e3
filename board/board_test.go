package board

import (
	"errors"
	"testing"

	"go.uber.org/multierr"

	"ledarena-go/errcode"
	"ledarena-go/platform"
)

func TestTeensy31Pins(t *testing.T) {
	want := map[Role]int{
		RoleLatch:        10,
		RoleClock:        13,
		RoleData:         11,
		RoleOutputEnable: 3,
		RoleNext:         23,
	}
	as := Teensy31.Assignments()
	if len(as) != len(want) {
		t.Fatalf("%d assignments", len(as))
	}
	for _, a := range as {
		if a.Pin != want[a.Role] {
			t.Errorf("%s on pin %d want %d", a.Role, a.Pin, want[a.Role])
		}
	}
	if err := Teensy31.Validate(); err != nil {
		t.Fatalf("stock layout invalid: %v", err)
	}
}

func TestAssignmentDirections(t *testing.T) {
	dirs := map[Role]Direction{}
	for _, a := range Teensy31.Assignments() {
		dirs[a.Role] = a.Dir
	}
	if dirs[RoleOutputEnable] != PWM || dirs[RoleNext] != Input || dirs[RoleData] != Output {
		t.Fatalf("directions: %v", dirs)
	}
}

func TestValidateReportsEveryCollision(t *testing.T) {
	l := Layout{Name: "bad", STCP: 10, SHCP: 10, DS: 10, OE: -1, Next: 23}
	err := l.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("got %d errors: %v", len(errs), err)
	}
	var inUse, unknown int
	for _, e := range errs {
		switch errcode.Of(e) {
		case errcode.PinInUse:
			inUse++
		case errcode.UnknownPin:
			unknown++
		}
	}
	if inUse != 2 || unknown != 1 {
		t.Fatalf("pin_in_use=%d unknown_pin=%d", inUse, unknown)
	}
	if !errors.Is(err, errcode.PinInUse) {
		t.Fatal("errors.Is should see pin_in_use through multierr")
	}
}

func TestBindConfiguresLines(t *testing.T) {
	f := platform.NewHostPinFactory(platform.HostGPIOMax)
	ls, err := Bind(f, Teensy31)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	check := func(n int, mode platform.Mode, level bool) {
		t.Helper()
		p, _ := f.Get(n)
		m, _ := p.State()
		if m != mode || p.Get() != level {
			t.Errorf("pin %d: mode=%s level=%v want %s/%v", n, m, p.Get(), mode, level)
		}
	}
	check(STCPPin, platform.ModeOutput, false)
	check(SHCPPin, platform.ModeOutput, false)
	check(DSPin, platform.ModeOutput, false)
	check(OEPin, platform.ModeOutput, true)
	check(NextPin, platform.ModeInput, false)

	if _, pull := ls.Next.(*platform.FakePin).State(); pull != platform.PullDown {
		t.Errorf("next pull=%s", pull)
	}
	for _, a := range Teensy31.Assignments() {
		if p := ls.Pin(a.Role); p == nil || p.Number() != a.Pin {
			t.Errorf("%s bound to %v", a.Role, p)
		}
	}

	if ls.NextLevel() {
		t.Fatal("next should idle low")
	}
	nxt, _ := f.Get(NextPin)
	nxt.Set(true)
	if !ls.NextLevel() {
		t.Fatal("next edge not visible")
	}
}

func TestBindErrors(t *testing.T) {
	small := platform.NewHostPinFactory(12)
	if _, err := Bind(small, Teensy31); errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("out-of-range pin err=%v", err)
	}

	dup := Teensy31
	dup.Next = dup.OE
	if _, err := Bind(platform.NewHostPinFactory(platform.HostGPIOMax), dup); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("shared pin err=%v", err)
	}
}

func TestRoleStrings(t *testing.T) {
	if RoleLatch.String() != "stcp" || RoleNext.String() != "next" || Role(9).String() != "role(9)" {
		t.Fatal("role names changed")
	}
}
