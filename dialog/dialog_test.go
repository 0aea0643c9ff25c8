package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// stubProvider replays queued targets per picker method, popping one entry
// per call. An exhausted queue reports dismissal. Optional gates hold a
// method open until the test releases it.
type stubProvider struct {
	mu       sync.Mutex
	configs  []Config
	saves    []*Target
	files    []*Target
	fileSets [][]Target
	dirs     []*Target
	dirSets  [][]Target

	saveGate chan struct{}
	fileGate chan struct{}
	dirGate  chan struct{}
}

func (p *stubProvider) record(cfg Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configs = append(p.configs, cfg)
}

func (p *stubProvider) seenConfigs() []Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Config(nil), p.configs...)
}

func popTarget(q *[]*Target) *Target {
	if len(*q) == 0 {
		return nil
	}
	t := (*q)[0]
	*q = (*q)[1:]
	return t
}

func popSet(q *[][]Target) []Target {
	if len(*q) == 0 {
		return nil
	}
	s := (*q)[0]
	*q = (*q)[1:]
	return s
}

func (p *stubProvider) OpenSave(_ context.Context, cfg Config) *Target {
	p.record(cfg)
	if p.saveGate != nil {
		<-p.saveGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return popTarget(&p.saves)
}

func (p *stubProvider) OpenFile(_ context.Context, cfg Config) *Target {
	p.record(cfg)
	if p.fileGate != nil {
		<-p.fileGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return popTarget(&p.files)
}

func (p *stubProvider) OpenFiles(_ context.Context, cfg Config) []Target {
	p.record(cfg)
	if p.fileGate != nil {
		<-p.fileGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return popSet(&p.fileSets)
}

func (p *stubProvider) OpenDirectory(_ context.Context, cfg Config) *Target {
	p.record(cfg)
	if p.dirGate != nil {
		<-p.dirGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return popTarget(&p.dirs)
}

func (p *stubProvider) OpenDirectories(_ context.Context, cfg Config) []Target {
	p.record(cfg)
	if p.dirGate != nil {
		<-p.dirGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return popSet(&p.dirSets)
}

// memFS keeps files in a map so tests can assert on payload I/O without
// touching disk. writeErr and readErr force failures.
type memFS struct {
	mu       sync.Mutex
	files    map[string][]byte
	writeErr error
	readErr  error
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (f *memFS) WriteFile(_ context.Context, target Target, contents []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[target.Path] = append([]byte(nil), contents...)
	return nil
}

func (f *memFS) ReadFile(_ context.Context, target Target) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	b, ok := f.files[target.Path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", target.Path)
	}
	return append([]byte(nil), b...), nil
}

func (f *memFS) stored(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.files[path]
	return b, ok
}

// newBridge builds a bridge whose Wake pushes into the returned channel,
// one signal per resolved launch.
func newBridge(t *testing.T, prov Provider, fs FS, regs ...Registration) (*Dialogs, chan struct{}) {
	t.Helper()
	woke := make(chan struct{}, 64)
	d, err := New(Options{
		Provider:      prov,
		FS:            fs,
		Wake:          func() { woke <- struct{}{} },
		Registrations: regs,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return d, woke
}

// waitWake blocks until one launch has posted its result. Results are
// posted before Wake fires, so a Poll after this sees the delivery.
func waitWake(t *testing.T, woke chan struct{}) {
	t.Helper()
	select {
	case <-woke:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a dialog to resolve")
	}
}

func TestNewValidation(t *testing.T) {
	prov := &stubProvider{}
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "nil provider",
			opts:    Options{Registrations: []Registration{WithSave("scene")}},
			wantErr: ErrNoProvider,
		},
		{
			name:    "no registrations",
			opts:    Options{Provider: prov},
			wantErr: ErrNoRegistrations,
		},
		{
			name: "duplicate key",
			opts: Options{
				Provider:      prov,
				Registrations: []Registration{WithLoad("scene"), WithLoad("scene")},
			},
			wantErr: ErrDuplicateRegistration,
		},
		{
			name: "empty kind",
			opts: Options{
				Provider:      prov,
				Registrations: []Registration{WithSave("")},
			},
			wantErr: ErrEmptyKind,
		},
		{
			name: "unknown family",
			opts: Options{
				Provider:      prov,
				Registrations: []Registration{{Family: Family(9), Kind: "scene"}},
			},
			wantErr: ErrUnknownFamily,
		},
		{
			name: "same kind across families is fine",
			opts: Options{
				Provider:      prov,
				Registrations: []Registration{WithSave("scene"), WithLoad("scene")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.opts)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("New returned error: %v", err)
				}
				if d == nil {
					t.Fatal("New returned nil bridge")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistered(t *testing.T) {
	d, _ := newBridge(t, &stubProvider{}, nil, WithSave("scene"), WithLoad("texture"))

	if !d.Registered(FamilySave, "scene") {
		t.Error("expected save/scene to be registered")
	}
	if d.Registered(FamilyLoad, "scene") {
		t.Error("load/scene should not be registered")
	}
	if d.Registered(FamilySave, "texture") {
		t.Error("save/texture should not be registered")
	}
}

func TestSaveDeliversContents(t *testing.T) {
	prov := &stubProvider{saves: []*Target{{Path: "/docs/a.txt", Name: "a.txt"}}}
	fs := newMemFS()
	d, woke := newBridge(t, prov, fs, WithSave("text"))

	err := d.Dialog().SetFileName("a.txt").SaveFile("text", []byte("hello"))
	if err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	saved, ok := events[0].(FileSaved)
	if !ok {
		t.Fatalf("event type = %T, want FileSaved", events[0])
	}
	if saved.Kind != "text" || saved.FileName != "a.txt" {
		t.Errorf("event = %+v, want kind text, file a.txt", saved)
	}
	if saved.Err != nil {
		t.Errorf("unexpected save error: %v", saved.Err)
	}
	if b, ok := fs.stored("/docs/a.txt"); !ok || string(b) != "hello" {
		t.Errorf("stored contents = %q, want %q", b, "hello")
	}
	if extra := d.Poll(); len(extra) != 0 {
		t.Errorf("second Poll returned %d events, want 0", len(extra))
	}
}

func TestSaveWriteFailureCompletesWithError(t *testing.T) {
	errDisk := fmt.Errorf("disk full")
	prov := &stubProvider{saves: []*Target{{Path: "/docs/a.txt", Name: "a.txt"}}}
	fs := newMemFS()
	fs.writeErr = errDisk
	d, woke := newBridge(t, prov, fs, WithSave("text"))

	if err := d.Dialog().SaveFile("text", []byte("hello")); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	saved, ok := events[0].(FileSaved)
	if !ok {
		t.Fatalf("event type = %T, want FileSaved, not a cancellation", events[0])
	}
	if !errors.Is(saved.Err, errDisk) {
		t.Errorf("event error = %v, want %v", saved.Err, errDisk)
	}
}

func TestSaveDismissalDeliversCancellation(t *testing.T) {
	prov := &stubProvider{} // empty queue dismisses
	d, woke := newBridge(t, prov, newMemFS(), WithSave("text"))

	if err := d.Dialog().SaveFile("text", []byte("hello")); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	canceled, ok := events[0].(SaveCanceled)
	if !ok {
		t.Fatalf("event type = %T, want SaveCanceled", events[0])
	}
	if canceled.Kind != "text" {
		t.Errorf("kind = %q, want text", canceled.Kind)
	}
}

func TestLoadSingleFile(t *testing.T) {
	prov := &stubProvider{files: []*Target{{Path: "/docs/notes.md", Name: "notes.md"}}}
	fs := newMemFS()
	fs.files["/docs/notes.md"] = []byte("# notes")
	d, woke := newBridge(t, prov, fs, WithLoad("doc"))

	if err := d.Dialog().LoadFile("doc"); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	loaded, ok := events[0].(FileLoaded)
	if !ok {
		t.Fatalf("event type = %T, want FileLoaded", events[0])
	}
	if loaded.FileName != "notes.md" || string(loaded.Contents) != "# notes" {
		t.Errorf("event = %+v, want notes.md with contents", loaded)
	}
	if loaded.Err != nil {
		t.Errorf("unexpected load error: %v", loaded.Err)
	}
}

func TestLoadMultipleDeliversBatchInOnePoll(t *testing.T) {
	targets := []Target{
		{Path: "/a.txt", Name: "a.txt"},
		{Path: "/b.txt", Name: "b.txt"},
		{Path: "/c.txt", Name: "c.txt"},
	}
	prov := &stubProvider{fileSets: [][]Target{targets}}
	fs := newMemFS()
	fs.files["/a.txt"] = []byte("one")
	fs.files["/b.txt"] = []byte("two")
	fs.files["/c.txt"] = []byte("three")
	d, woke := newBridge(t, prov, fs, WithLoad("doc"))

	if err := d.Dialog().LoadMultipleFiles("doc"); err != nil {
		t.Fatalf("LoadMultipleFiles returned error: %v", err)
	}

	// One wake per launch, so a single Poll must surface all three.
	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 3 {
		t.Fatalf("Poll returned %d events, want 3", len(events))
	}
	wantNames := []string{"a.txt", "b.txt", "c.txt"}
	wantContents := []string{"one", "two", "three"}
	for i, ev := range events {
		loaded, ok := ev.(FileLoaded)
		if !ok {
			t.Fatalf("event %d type = %T, want FileLoaded", i, ev)
		}
		if loaded.FileName != wantNames[i] {
			t.Errorf("event %d file = %q, want %q (selection order)", i, loaded.FileName, wantNames[i])
		}
		if string(loaded.Contents) != wantContents[i] {
			t.Errorf("event %d contents = %q, want %q", i, loaded.Contents, wantContents[i])
		}
	}
}

func TestLoadMultipleDismissalIsOneEvent(t *testing.T) {
	prov := &stubProvider{fileSets: [][]Target{nil}}
	d, woke := newBridge(t, prov, newMemFS(), WithLoad("doc"))

	if err := d.Dialog().LoadMultipleFiles("doc"); err != nil {
		t.Fatalf("LoadMultipleFiles returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want exactly 1", len(events))
	}
	if _, ok := events[0].(LoadCanceled); !ok {
		t.Fatalf("event type = %T, want LoadCanceled", events[0])
	}
	if extra := d.Poll(); len(extra) != 0 {
		t.Errorf("second Poll returned %d events, want 0", len(extra))
	}
}

func TestPartialReadFailureErrorsOnlyThatFile(t *testing.T) {
	targets := []Target{
		{Path: "/a.txt", Name: "a.txt"},
		{Path: "/missing.txt", Name: "missing.txt"},
	}
	prov := &stubProvider{fileSets: [][]Target{targets}}
	fs := newMemFS()
	fs.files["/a.txt"] = []byte("one")
	d, woke := newBridge(t, prov, fs, WithLoad("doc"))

	if err := d.Dialog().LoadMultipleFiles("doc"); err != nil {
		t.Fatalf("LoadMultipleFiles returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 2 {
		t.Fatalf("Poll returned %d events, want 2", len(events))
	}
	first := events[0].(FileLoaded)
	second := events[1].(FileLoaded)
	if first.Err != nil || string(first.Contents) != "one" {
		t.Errorf("first event = %+v, want clean read", first)
	}
	if second.Err == nil {
		t.Error("second event has nil Err, want read failure")
	}
	if second.Contents != nil {
		t.Errorf("second event contents = %q, want nil", second.Contents)
	}
}

func TestPickMultipleDirectories(t *testing.T) {
	dirs := []Target{
		{Path: "/srv/alpha", Name: "alpha"},
		{Path: "/srv/beta", Name: "beta"},
		{Path: "/srv/gamma", Name: "gamma"},
	}
	prov := &stubProvider{dirSets: [][]Target{dirs}}
	d, woke := newBridge(t, prov, nil, WithPickDirectory("workspace"))

	if err := d.Dialog().PickMultipleDirectories("workspace"); err != nil {
		t.Fatalf("PickMultipleDirectories returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 3 {
		t.Fatalf("Poll returned %d events, want 3", len(events))
	}
	want := []string{"/srv/alpha", "/srv/beta", "/srv/gamma"}
	for i, ev := range events {
		picked, ok := ev.(DirectoryPicked)
		if !ok {
			t.Fatalf("event %d type = %T, want DirectoryPicked", i, ev)
		}
		if picked.Path != want[i] {
			t.Errorf("event %d path = %q, want %q", i, picked.Path, want[i])
		}
	}
}

func TestPickFileCarriesPathOnly(t *testing.T) {
	prov := &stubProvider{files: []*Target{{Path: "/srv/report.csv", Name: "report.csv"}}}
	d, woke := newBridge(t, prov, nil, WithPickFile("import"))

	if err := d.Dialog().PickFile("import"); err != nil {
		t.Fatalf("PickFile returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	picked, ok := events[0].(FilePicked)
	if !ok {
		t.Fatalf("event type = %T, want FilePicked", events[0])
	}
	if picked.Path != "/srv/report.csv" {
		t.Errorf("path = %q, want /srv/report.csv", picked.Path)
	}
}

func TestEventsStayOnTheirChannel(t *testing.T) {
	prov := &stubProvider{
		files: []*Target{{Path: "/scenes/level.scene", Name: "level.scene"}},
	}
	fs := newMemFS()
	fs.files["/scenes/level.scene"] = []byte("scene data")
	d, woke := newBridge(t, prov, fs, WithLoad("scene"), WithLoad("texture"))

	if err := d.Dialog().LoadFile("scene"); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	if got := events[0].Key(); got != (Key{Family: FamilyLoad, Kind: "scene"}) {
		t.Errorf("event key = %s, want load/scene", got)
	}

	// The texture channel saw nothing and keeps seeing nothing.
	prov.mu.Lock()
	prov.files = []*Target{{Path: "/tex/wall.png", Name: "wall.png"}}
	prov.mu.Unlock()
	fs.mu.Lock()
	fs.files["/tex/wall.png"] = []byte("png")
	fs.mu.Unlock()

	if err := d.Dialog().LoadFile("texture"); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	waitWake(t, woke)
	events = d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	if got := events[0].Key(); got != (Key{Family: FamilyLoad, Kind: "texture"}) {
		t.Errorf("event key = %s, want load/texture", got)
	}
}

func TestPollVisitsChannelsInRegistrationOrder(t *testing.T) {
	saveGate := make(chan struct{})
	prov := &stubProvider{
		saves:    []*Target{{Path: "/out/result.txt", Name: "result.txt"}},
		files:    []*Target{{Path: "/in/input.txt", Name: "input.txt"}},
		saveGate: saveGate,
	}
	fs := newMemFS()
	fs.files["/in/input.txt"] = []byte("in")
	d, woke := newBridge(t, prov, fs, WithSave("out"), WithLoad("in"))

	if err := d.Dialog().SaveFile("out", []byte("result")); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}
	if err := d.Dialog().LoadFile("in"); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	// The load resolves first, then the save; delivery order still
	// follows registration order, not resolution order.
	waitWake(t, woke)
	close(saveGate)
	waitWake(t, woke)

	events := d.Poll()
	if len(events) != 2 {
		t.Fatalf("Poll returned %d events, want 2", len(events))
	}
	if _, ok := events[0].(FileSaved); !ok {
		t.Errorf("first event type = %T, want FileSaved", events[0])
	}
	if _, ok := events[1].(FileLoaded); !ok {
		t.Errorf("second event type = %T, want FileLoaded", events[1])
	}
}

func TestPollOnIdleBridgeIsNoOp(t *testing.T) {
	d, _ := newBridge(t, &stubProvider{}, nil, WithSave("text"))
	for i := 0; i < 3; i++ {
		if events := d.Poll(); len(events) != 0 {
			t.Fatalf("Poll %d returned %d events, want 0", i, len(events))
		}
	}
}

func TestPendingLifecycle(t *testing.T) {
	fileGate := make(chan struct{})
	prov := &stubProvider{
		files:    []*Target{{Path: "/docs/open.md", Name: "open.md"}},
		fileGate: fileGate,
	}
	fs := newMemFS()
	fs.files["/docs/open.md"] = []byte("body")
	d, woke := newBridge(t, prov, fs, WithLoad("doc"))

	if len(d.Pending()) != 0 {
		t.Fatal("fresh bridge reports pending operations")
	}
	if err := d.Dialog().LoadFile("doc"); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	pending := d.Pending()
	if len(pending) != 1 {
		t.Fatalf("Pending returned %d operations, want 1", len(pending))
	}
	op := pending[0]
	if op.Key != (Key{Family: FamilyLoad, Kind: "doc"}) {
		t.Errorf("pending key = %s, want load/doc", op.Key)
	}
	if op.State != StateOpening {
		t.Errorf("pending state = %s, want opening", op.State)
	}
	if op.ID == "" {
		t.Error("pending operation has empty id")
	}

	close(fileGate)
	waitWake(t, woke)
	if remaining := d.Pending(); len(remaining) != 0 {
		t.Fatalf("Pending returned %d operations after resolution, want 0", len(remaining))
	}
	if events := d.Poll(); len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
}

func TestDataRidesOnCompletionEvents(t *testing.T) {
	type requestTag struct{ Seq int }

	prov := &stubProvider{saves: []*Target{{Path: "/out/a.txt", Name: "a.txt"}}}
	d, woke := newBridge(t, prov, newMemFS(), WithSave("text"))

	err := d.Dialog().SetData(requestTag{Seq: 7}).SaveFile("text", []byte("x"))
	if err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}

	waitWake(t, woke)
	events := d.Poll()
	if len(events) != 1 {
		t.Fatalf("Poll returned %d events, want 1", len(events))
	}
	saved := events[0].(FileSaved)
	tag, ok := saved.Data.(requestTag)
	if !ok {
		t.Fatalf("data type = %T, want requestTag", saved.Data)
	}
	if tag.Seq != 7 {
		t.Errorf("data seq = %d, want 7", tag.Seq)
	}
}

func TestConcurrentLaunchesSameChannel(t *testing.T) {
	prov := &stubProvider{
		saves: []*Target{
			{Path: "/out/1.txt", Name: "1.txt"},
			{Path: "/out/2.txt", Name: "2.txt"},
			{Path: "/out/3.txt", Name: "3.txt"},
		},
	}
	d, woke := newBridge(t, prov, newMemFS(), WithSave("text"))

	for i := 0; i < 3; i++ {
		if err := d.Dialog().SaveFile("text", []byte("x")); err != nil {
			t.Fatalf("SaveFile %d returned error: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		waitWake(t, woke)
	}

	events := d.Poll()
	if len(events) != 3 {
		t.Fatalf("Poll returned %d events, want 3", len(events))
	}
	seen := make(map[string]bool)
	for _, ev := range events {
		saved, ok := ev.(FileSaved)
		if !ok {
			t.Fatalf("event type = %T, want FileSaved", ev)
		}
		if seen[saved.FileName] {
			t.Errorf("file %q delivered twice", saved.FileName)
		}
		seen[saved.FileName] = true
	}
}

func TestWakeFiresOncePerDelivery(t *testing.T) {
	prov := &stubProvider{
		saves: []*Target{
			{Path: "/out/1.txt", Name: "1.txt"},
			{Path: "/out/2.txt", Name: "2.txt"},
		},
	}
	d, woke := newBridge(t, prov, newMemFS(), WithSave("text"))

	for i := 0; i < 2; i++ {
		if err := d.Dialog().SaveFile("text", []byte("x")); err != nil {
			t.Fatalf("SaveFile %d returned error: %v", i, err)
		}
	}
	for i := 0; i < 2; i++ {
		waitWake(t, woke)
	}

	if events := d.Poll(); len(events) != 2 {
		t.Fatalf("Poll returned %d events, want 2", len(events))
	}
	select {
	case <-woke:
		t.Error("wake fired again after both deliveries were consumed")
	default:
	}
}
