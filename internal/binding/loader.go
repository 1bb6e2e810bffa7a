package binding

import (
	"io/fs"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/soar/joyshop/internal/keys"
)

// Entry is the file and wire form of one control's binding.
type Entry struct {
	Control string `mapstructure:"-" json:"control"`
	Action  string `mapstructure:"action" json:"action"`
	Name    string `mapstructure:"name" json:"name,omitempty"`
	Key     string `mapstructure:"key" json:"key,omitempty"`
	Ctrl    bool   `mapstructure:"ctrl" json:"ctrl,omitempty"`
	Alt     bool   `mapstructure:"alt" json:"alt,omitempty"`
	Shift   bool   `mapstructure:"shift" json:"shift,omitempty"`
}

func entryOf(c Control, b Binding) Entry {
	e := Entry{Control: c.String(), Action: b.Action.String()}
	if b.IsNone() {
		return e
	}
	e.Name = b.Name
	e.Key = b.Key.String()
	e.Ctrl, e.Alt, e.Shift = b.Ctrl, b.Alt, b.Shift
	return e
}

func (e Entry) binding() (Binding, error) {
	action, err := ParseAction(e.Action)
	if err != nil {
		return Binding{}, err
	}
	if action == ActionNone {
		return Binding{}, nil
	}
	key, err := keys.Parse(e.Key)
	if err != nil {
		return Binding{}, err
	}
	name := e.Name
	if name == "" {
		name = key.String()
	}
	return Binding{
		Action: action,
		KeyCombination: KeyCombination{
			Name:  name,
			Key:   key,
			Ctrl:  e.Ctrl,
			Alt:   e.Alt,
			Shift: e.Shift,
		},
	}, nil
}

// Entries lists the table in control order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, ControlCount)
	t.Each(func(c Control, b Binding) {
		entries = append(entries, entryOf(c, b))
	})
	return entries
}

// Read parses the binding file at path. The format follows the file
// extension (yaml, json, toml). Controls the file leaves out are no-ops.
func Read(path string) (*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read bindings %s", path)
	}

	names := v.AllSettings()
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	m := make(map[Control]Binding, len(sorted))
	for _, name := range sorted {
		c, ok := ParseControl(name)
		if !ok {
			return nil, errors.Errorf("%s: unknown control %q", path, name)
		}
		var e Entry
		if s, ok := v.Get(name).(string); ok {
			e.Action = s
		} else if err := v.UnmarshalKey(name, &e); err != nil {
			return nil, errors.Wrapf(err, "%s: control %s", path, name)
		}
		b, err := e.binding()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: control %s", path, name)
		}
		m[c] = b
	}
	return NewTable(m), nil
}

// Write stores t at path in the format chosen by the file extension.
func Write(path string, t *Table) error {
	v := viper.New()
	for _, e := range t.Entries() {
		fields := map[string]any{"action": e.Action}
		if e.Action != ActionNone.String() {
			fields["name"] = e.Name
			fields["key"] = e.Key
			fields["ctrl"] = e.Ctrl
			fields["alt"] = e.Alt
			fields["shift"] = e.Shift
		}
		v.Set(e.Control, fields)
	}
	return errors.Wrapf(v.WriteConfigAs(path), "write bindings %s", path)
}

// Loader keeps a Store in sync with a binding file.
type Loader struct {
	path  string
	store *Store

	mu       sync.Mutex
	onReload []func(*Table)
}

func NewLoader(path string, store *Store) *Loader {
	return &Loader{path: path, store: store}
}

func (l *Loader) Path() string {
	return l.path
}

// OnReload registers fn to run after every successful load.
func (l *Loader) OnReload(fn func(*Table)) {
	l.mu.Lock()
	l.onReload = append(l.onReload, fn)
	l.mu.Unlock()
}

// Load reads the binding file into the store. A missing file is created
// with the default table first.
func (l *Loader) Load() error {
	if _, err := os.Stat(l.path); errors.Is(err, fs.ErrNotExist) {
		if err := Write(l.path, Default()); err != nil {
			return err
		}
		log.Printf("Wrote default bindings to %s", l.path)
	}
	return l.Reload()
}

// Reload re-reads the binding file. On failure the current table stays
// installed.
func (l *Loader) Reload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := Read(l.path)
	if err != nil {
		return err
	}
	l.store.Replace(t)
	for _, fn := range l.onReload {
		fn(t)
	}
	return nil
}

// Watch reloads the table whenever the binding file changes on disk.
func (l *Loader) Watch() {
	v := viper.New()
	v.SetConfigFile(l.path)
	if err := v.ReadInConfig(); err != nil {
		log.Printf("Bindings watch disabled: %v", err)
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := l.Reload(); err != nil {
			log.Printf("Bindings reload failed, keeping previous table: %v", err)
			return
		}
		log.Printf("Bindings reloaded from %s", e.Name)
	})
	v.WatchConfig()
}
