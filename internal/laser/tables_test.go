package laser

import "testing"

func TestRedirectTableExhaustive(t *testing.T) {
	want := map[Orientation]map[Dir]Dir{
		UpLeft:    {DirRight: DirUp, DirDown: DirLeft},
		DownLeft:  {DirRight: DirDown, DirUp: DirLeft},
		DownRight: {DirLeft: DirDown, DirUp: DirRight},
		UpRight:   {DirLeft: DirUp, DirDown: DirRight},
	}
	for o := UpLeft; o <= UpRight; o++ {
		compatible := 0
		for _, in := range Dirs {
			out, ok := Redirect(o, in)
			exp, expOK := want[o][in]
			if ok != expOK || (ok && out != exp) {
				t.Errorf("Redirect(%v, %v) = %v, %v; want %v, %v", o, in, out, ok, exp, expOK)
			}
			if ok {
				compatible++
				if out == in || out == in.Opposite() {
					t.Errorf("Redirect(%v, %v) = %v is not a turn", o, in, out)
				}
			}
		}
		if compatible != 2 {
			t.Errorf("%v has %d compatible directions, want 2", o, compatible)
		}
	}
}

func TestSplitTableTotality(t *testing.T) {
	want := map[Dir]map[Dir][2]Dir{
		DirUp:    {DirUp: {DirLeft, DirUp}, DirDown: {DirLeft, DirDown}, DirRight: {DirUp, DirDown}},
		DirLeft:  {DirUp: {DirLeft, DirRight}, DirLeft: {DirLeft, DirDown}, DirRight: {DirRight, DirDown}},
		DirDown:  {DirUp: {DirUp, DirRight}, DirDown: {DirDown, DirRight}, DirLeft: {DirUp, DirDown}},
		DirRight: {DirDown: {DirLeft, DirRight}, DirLeft: {DirLeft, DirUp}, DirRight: {DirRight, DirUp}},
	}
	for _, facing := range Dirs {
		stubs := 0
		for _, in := range Dirs {
			pair, ok := Split(facing, in)
			if !ok {
				stubs++
				if _, listed := want[facing][in]; listed {
					t.Errorf("Split(%v, %v) stubbed, want %v", facing, in, want[facing][in])
				}
				continue
			}
			if pair != want[facing][in] {
				t.Errorf("Split(%v, %v) = %v, want %v", facing, in, pair, want[facing][in])
			}
			if pair[0] == pair[1] {
				t.Errorf("Split(%v, %v) children are not disjoint: %v", facing, in, pair)
			}
		}
		if stubs != 1 {
			t.Errorf("splitter facing %v stubs %d directions, want 1", facing, stubs)
		}
	}
}

func TestOpposes(t *testing.T) {
	tests := []struct {
		facing Dir
		in     Dir
	}{
		{DirUp, DirDown},
		{DirLeft, DirRight},
		{DirDown, DirUp},
		{DirRight, DirLeft},
	}
	for _, tt := range tests {
		for _, in := range Dirs {
			if got := Opposes(tt.facing, in); got != (in == tt.in) {
				t.Errorf("Opposes(%v, %v) = %v", tt.facing, in, got)
			}
		}
	}
}

func TestOrientationRotationWraps(t *testing.T) {
	if UpRight.RotateLeft() != UpLeft {
		t.Error("RotateLeft should wrap UpRight to UpLeft")
	}
	if UpLeft.RotateRight() != UpRight {
		t.Error("RotateRight should wrap UpLeft to UpRight")
	}
	for o := UpLeft; o <= UpRight; o++ {
		if o.RotateLeft().RotateRight() != o {
			t.Errorf("rotating %v left then right should be identity", o)
		}
		if k, _ := o.Kind().Orientation(); k != o {
			t.Errorf("%v round-trips through its kind as %v", o, k)
		}
	}
}

func TestConnectionUnlockOnlyFlipsLaserLocked(t *testing.T) {
	table, err := NewConnectionTable([]Connection{
		{Target: "a", Requirement: RequirementFromCode(0)},
		{Target: "b", Requirement: RequirementFromCode(2)},
		{Target: "c", Requirement: RequirementFromCode(-5)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if table.unlock("a") || table.unlock("b") || table.unlock("missing") {
		t.Error("only laser-locked connections flip")
	}
	if !table.unlock("c") {
		t.Fatal("laser-locked connection should flip")
	}
	if table.unlock("c") {
		t.Error("a connection flips exactly once")
	}
	if c, _ := table.Get("c"); c.Requirement.Code() != 5 {
		t.Errorf("code after unlock = %d, want 5", c.Requirement.Code())
	}
}
