package document

import "testing"

func TestConfigStoreDefaults(t *testing.T) {
	s := NewConfigStore(3)

	for i := 0; i < 3; i++ {
		cfg := s.Get(i)
		if !cfg.Selected || cfg.Rotation != 0 {
			t.Errorf("page %d: got %+v, want selected with no rotation", i, cfg)
		}
	}
	// Out-of-range reads also resolve to the default.
	if cfg := s.Get(99); !cfg.Selected || cfg.Rotation != 0 {
		t.Errorf("out of range: got %+v", cfg)
	}
	if len(s.entries) != 0 {
		t.Errorf("Get materialized %d entries", len(s.entries))
	}
}

func TestConfigStoreSetMergesPartial(t *testing.T) {
	s := NewConfigStore(2)

	cfg := s.Set(0, PageConfigPatch{Rotation: intPtr(90)})
	if !cfg.Selected || cfg.Rotation != 90 {
		t.Fatalf("after rotation patch: %+v", cfg)
	}

	cfg = s.Set(0, PageConfigPatch{Selected: boolPtr(false)})
	if cfg.Selected || cfg.Rotation != 90 {
		t.Fatalf("selection patch clobbered rotation: %+v", cfg)
	}

	cfg = s.Set(0, PageConfigPatch{})
	if cfg.Selected || cfg.Rotation != 90 {
		t.Fatalf("empty patch changed entry: %+v", cfg)
	}
}

func TestConfigStoreRotationNormalization(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 0}, {90, 90}, {180, 180}, {270, 270},
		{360, 0}, {450, 90}, {-90, 270}, {-360, 0},
		{45, 0}, {100, 90}, {359, 270},
	}
	s := NewConfigStore(1)
	for _, tc := range cases {
		cfg := s.Set(0, PageConfigPatch{Rotation: intPtr(tc.in)})
		if cfg.Rotation != tc.want {
			t.Errorf("rotation %d: got %d, want %d", tc.in, cfg.Rotation, tc.want)
		}
	}
}

func TestConfigStoreRotateSteps(t *testing.T) {
	s := NewConfigStore(1)
	want := []int{90, 180, 270, 0, 90}
	for i, w := range want {
		cfg := s.Rotate(0)
		if cfg.Rotation != w {
			t.Fatalf("step %d: got %d, want %d", i+1, cfg.Rotation, w)
		}
		if !cfg.Selected {
			t.Fatal("rotate changed selection")
		}
	}
}

func TestConfigStoreSelectAll(t *testing.T) {
	s := NewConfigStore(4)
	s.Set(1, PageConfigPatch{Rotation: intPtr(180)})

	s.DeselectAll()
	if len(s.entries) != 4 {
		t.Fatalf("DeselectAll materialized %d entries, want 4", len(s.entries))
	}
	for i := 0; i < 4; i++ {
		if s.Get(i).Selected {
			t.Errorf("page %d still selected", i)
		}
	}
	if s.Get(1).Rotation != 180 {
		t.Error("DeselectAll clobbered rotation")
	}

	s.SelectAll()
	for i := 0; i < 4; i++ {
		if !s.Get(i).Selected {
			t.Errorf("page %d not selected", i)
		}
	}
	if s.Get(1).Rotation != 180 {
		t.Error("SelectAll clobbered rotation")
	}
}

func TestConfigStoreSnapshot(t *testing.T) {
	s := NewConfigStore(3)
	s.Set(1, PageConfigPatch{Selected: boolPtr(false), Rotation: intPtr(270)})

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length %d, want 3", len(snap))
	}
	if !snap[0].Selected || snap[0].Rotation != 0 {
		t.Errorf("page 0 should be default, got %+v", snap[0])
	}
	if snap[1].Selected || snap[1].Rotation != 270 {
		t.Errorf("page 1: got %+v", snap[1])
	}
	if !snap[2].Selected || snap[2].Rotation != 0 {
		t.Errorf("page 2 should be default, got %+v", snap[2])
	}
}
