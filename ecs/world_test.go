package ecs

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tower/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected id reuse, got %v and %v", old, reused)
	}
	if reused == old {
		t.Fatalf("expected generation bump on reuse")
	}
	if Has(w, reused, h.Kind()) {
		t.Fatalf("reused entity should not inherit components")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				if got := len(w.Query(h2.Kind())); got != 2 {
					t.Fatalf("expected 2 query results, got %d", got)
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "nil_component_rejected",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if err := Add[int](w, e1, h1.Kind(), nil); err != component.ErrNilComponent {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
				var zero component.ComponentKind[int]
				if err := Add(w, e1, zero, intPtr(1)); err != component.ErrInvalidComponentKind {
					t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
				}
			},
			teardown: func() bool { return true },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)

	if _, ok := set[e1]; !ok {
		t.Fatalf("expected e1 in ForEach result")
	}
	if _, ok := set[e3]; !ok {
		t.Fatalf("expected e3 in ForEach result")
	}
	if _, ok := set[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestForEachDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	a := CreateEntity(w)
	b := CreateEntity(w)
	_ = Add(w, a, h.Kind(), intPtr(1))
	_ = Add(w, b, h.Kind(), intPtr(2))

	visits := 0
	ForEach(w, h.Kind(), func(e Entity, _ *int) {
		visits++
		// first visitor destroys both
		DestroyEntity(w, a)
		DestroyEntity(w, b)
	})
	if visits != 1 {
		t.Fatalf("expected 1 visit, got %d", visits)
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponent[int]().Kind()
				kb := component.NewComponent[int]().Kind()
				kc := component.NewComponent[int]().Kind()

				for _, step := range []struct {
					e Entity
					k component.ComponentKind[int]
				}{
					{e1, ka}, {e2, ka}, {e2, kb}, {e2, kc}, {e3, kb},
				} {
					if err := Add(w, step.e, step.k, intPtr(1)); err != nil {
						t.Fatal(err)
					}
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponent[int]().Kind()
				kb := component.NewComponent[int]().Kind()
				kc := component.NewComponent[int]().Kind()

				for _, k := range []component.ComponentKind[int]{ka, kb, kc} {
					if err := Add(w, e, k, intPtr(1)); err != nil {
						t.Fatal(err)
					}
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponent[int]().Kind()
				kb := component.NewComponent[int]().Kind()
				kc := component.NewComponent[int]().Kind()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEach4(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	ka := component.NewComponent[int]().Kind()
	kb := component.NewComponent[int]().Kind()
	kc := component.NewComponent[int]().Kind()
	kd := component.NewComponent[int]().Kind()

	// e2 is the only entity with all four
	for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
		if err := Add(w, e2, k, intPtr(2)); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, e1, ka, intPtr(1)); err != nil {
		t.Fatal(err)
	}

	var res []Entity
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *int, _ *int, _ *int, _ *int) { res = append(res, e) })
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}

type recordingSystem struct {
	name string
	log  *[]string
}

func (s recordingSystem) Update(*World) { *s.log = append(*s.log, s.name) }

func TestSchedulerRunsInOrder(t *testing.T) {
	var log []string
	s := NewScheduler(
		recordingSystem{"input", &log},
		nil,
		recordingSystem{"dash", &log},
		recordingSystem{"physics", &log},
	)
	s.Update(NewWorld())

	want := []string{"input", "dash", "physics"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(s.Systems()))
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Push(Event{Type: EventShotFired})
	q.Push(Event{Type: EventLevelChanged, Data: LevelChanged{Level: 2}})

	seen := 0
	q.Each(func(Event) { seen++ })
	if seen != 2 || q.Len() != 2 {
		t.Fatalf("Each should not consume: seen=%d len=%d", seen, q.Len())
	}

	events := q.Drain()
	if len(events) != 2 || q.Len() != 0 {
		t.Fatalf("expected drain of 2, got %d (left %d)", len(events), q.Len())
	}
	if lc, ok := events[1].Data.(LevelChanged); !ok || lc.Level != 2 {
		t.Fatalf("unexpected payload %#v", events[1].Data)
	}
}

func TestEntityRefRoundTrip(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	DestroyEntity(w, a)
	b := CreateEntity(w)

	if got := FromRef(b.Ref()); got != b {
		t.Fatalf("FromRef(Ref) = %v, want %v", got, b)
	}
	if a.String() == b.String() {
		t.Fatalf("reused slot should print a new generation: %s", b)
	}
}

type recordingRenderer struct {
	name string
	log  *[]string
}

func (r recordingRenderer) Draw(*World, *ebiten.Image) { *r.log = append(*r.log, r.name) }

func TestSchedulerDrawsRenderersInOrder(t *testing.T) {
	var log []string
	s := NewScheduler()
	s.AddRenderer(recordingRenderer{"scene", &log})
	s.AddRenderer(nil)
	s.AddRenderer(recordingRenderer{"hud", &log})

	s.Draw(NewWorld(), ebiten.NewImage(4, 4))
	if !slices.Equal(log, []string{"scene", "hud"}) {
		t.Fatalf("draw order = %v", log)
	}
}
