package clip

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// LiveUpdateOpt is the type restriction of L in ConfigFile[L].
// EnableLiveUpdate and DisableLiveUpdate are the two implementations.
// This interface SHOULD NOT be implemented by users.
type LiveUpdateOpt interface {
	isWatched() bool
}

var (
	EnableLU  LiveUpdateOpt = EnableLiveUpdate{}
	DisableLU LiveUpdateOpt = DisableLiveUpdate{}
)

// EnableLiveUpdate implements LiveUpdateOpt
type EnableLiveUpdate struct{}

func (EnableLiveUpdate) isWatched() bool { return true }

// DisableLiveUpdate implements LiveUpdateOpt
type DisableLiveUpdate struct{}

func (DisableLiveUpdate) isWatched() bool { return false }

// ConfigFile loads the config-tier mapping of a resolver from a file.
// The mapping feeds Parser.Resolve as its config argument; the resolver
// itself never touches the filesystem.
// To follow file changes, use ConfigFile[clip.EnableLiveUpdate].
type ConfigFile[L LiveUpdateOpt] struct {
	// go vet will warn if user try to copy instance.

	loaded atomic.Bool

	// With live update enabled the mapping is swapped whole behind an
	// atomic pointer: a caller holding the result of an earlier Get keeps
	// a consistent snapshot while the watcher routine installs a fresh
	// one.
	atomM atomic.Pointer[map[string]any]
	m     map[string]any

	liveUpdate L
	events     chan fsnotify.Event
}

// a generic unmarshal function; json, yaml and toml all have this shape
type unmarshalFn func(data []byte, v any) error

// Load reads and parses the mapping from path.
func (f *ConfigFile[L]) Load(path string) error {
	if !f.loaded.CompareAndSwap(false, true) {
		// make sure this method is called only once
		panic("ConfigFile[L].Load() is called more than once")
	}

	if err := f.load(path); err != nil {
		return err
	}

	// the watcher starts only once, because Load runs only once
	if f.liveUpdate.isWatched() {
		f.events = make(chan fsnotify.Event, 2)
		f.watchChange(path)
	}
	return nil
}

func (f *ConfigFile[L]) load(path string) error {
	m, err := loadMapping(path)
	if err != nil {
		return err
	}
	if f.liveUpdate.isWatched() {
		f.atomM.Store(&m)
	} else {
		f.m = m
	}
	return nil
}

// Get returns the current mapping. With live update enabled the result
// is a stable snapshot; later file changes produce a new mapping without
// touching snapshots already handed out.
func (f *ConfigFile[L]) Get() map[string]any {
	if f.liveUpdate.isWatched() {
		if m := f.atomM.Load(); m != nil {
			return *m
		}
		return nil
	}
	return f.m
}

func (f *ConfigFile[L]) watchChange(filename string) {
	configFile := filepath.Clean(filename)
	configDir, _ := filepath.Split(configFile)
	realConfigFile, _ := filepath.EvalSymlinks(filename)

	// we have to watch the entire directory to pick up renames/atomic saves in a cross-platform way
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("failed to create watcher: %s", err)
		os.Exit(1)
	}

	if err := watcher.Add(configDir); err != nil {
		log.Printf("watch add conf dir err %v", err)
		watcher.Close()
		return
	}

	go func(watcher *fsnotify.Watcher) {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok { // 'Events' channel is closed
					return
				}
				currentConfigFile, _ := filepath.EvalSymlinks(filename)
				// we only care about the config file with the following cases:
				// 1 - if the config file was modified or created
				// 2 - if the real path to the config file changed (eg: k8s ConfigMap replacement)
				if (filepath.Clean(event.Name) == configFile &&
					(event.Has(fsnotify.Write) || event.Has(fsnotify.Create))) ||
					(currentConfigFile != "" && currentConfigFile != realConfigFile) {
					realConfigFile = currentConfigFile
					if err := f.load(filename); err != nil {
						log.Printf("read config file error: %s", err)
					}
					select {
					case f.events <- event:
					default:
						// if f.events blocks, discard this event
					}
				} else if filepath.Clean(event.Name) == configFile && event.Has(fsnotify.Remove) {
					return
				}

			case err, ok := <-watcher.Errors:
				if ok { // 'Errors' channel is not closed
					log.Printf("watcher error: %s", err)
				}
				return
			}
		}
	}(watcher)
}

// UpdateEvents returns a channel receiving an event per applied file
// change. Channels are used instead of callbacks so updates are observed
// one at a time, never concurrently.
func (f *ConfigFile[L]) UpdateEvents() <-chan fsnotify.Event {
	return f.events
}

// loadMapping parses path into a mapping. The extension picks the
// format; without a recognized extension every format is tried in order.
func loadMapping(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parseOrder := []unmarshalFn{
		json.Unmarshal, yaml.Unmarshal, toml.Unmarshal,
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		parseOrder = []unmarshalFn{yaml.Unmarshal}
	} else if strings.HasSuffix(path, ".json") {
		parseOrder = []unmarshalFn{json.Unmarshal}
	} else if strings.HasSuffix(path, ".toml") {
		parseOrder = []unmarshalFn{toml.Unmarshal}
	}

	return parseByOrder(content, parseOrder)
}

func parseByOrder(content []byte, parseOrder []unmarshalFn) (map[string]any, error) {
	var m map[string]any
	elist := []string{}
	for _, unmarshal := range parseOrder {
		if err := unmarshal(content, &m); err == nil {
			return normalizeMapping(m), nil
		} else {
			elist = append(elist, fmt.Sprintf("[%s]", err.Error()))
		}
	}
	return nil, fmt.Errorf("%s", strings.Join(elist, " "))
}

// normalizeMapping rewrites yaml's map[any]any nesting into
// map[string]any so subcommand sections look the same for every format.
func normalizeMapping(m map[string]any) map[string]any {
	for k, v := range m {
		switch nested := v.(type) {
		case map[any]any:
			flat := make(map[string]any, len(nested))
			for nk, nv := range nested {
				flat[fmt.Sprint(nk)] = nv
			}
			m[k] = normalizeMapping(flat)
		case map[string]any:
			m[k] = normalizeMapping(nested)
		}
	}
	return m
}

// mergeMapping copies src entries over dst, nested subcommand sections
// included.
func mergeMapping(dst, src map[string]any) {
	for k, v := range src {
		if sn, ok := v.(map[string]any); ok {
			if dn, ok := dst[k].(map[string]any); ok {
				mergeMapping(dn, sn)
				continue
			}
		}
		dst[k] = v
	}
}

// SearchPath lists candidate config files in ascending precedence:
// values from the user file override the global one, the local file
// overrides both. It is an explicit value handed to the program, never
// package state.
type SearchPath struct {
	Global string
	User   string
	Local  string
}

// DefaultSearchPath is the conventional trio for a program name:
// /etc/<program>/config.yaml, ~/.config/<program>/config.yaml and
// ./.<program>.yaml.
func DefaultSearchPath(program string) SearchPath {
	home, _ := os.UserHomeDir()
	return SearchPath{
		Global: filepath.Join("/etc", program, "config.yaml"),
		User:   filepath.Join(home, ".config", program, "config.yaml"),
		Local:  "." + program + ".yaml",
	}
}

// Load merges the existing candidate files. Missing files are skipped;
// a present but unparseable file is an error.
func (s SearchPath) Load() (map[string]any, error) {
	merged := map[string]any{}
	for _, path := range []string{s.Global, s.User, s.Local} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := loadMapping(path)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		mergeMapping(merged, m)
	}
	return merged, nil
}
