package cadence

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure returned from
// LoadPageConfig, ParsePageConfig and Build.
var ErrInvalidConfig = errors.New("invalid page config")

// PageConfig describes a whole page: its viewport, the scrollable page size,
// the regions with their reveal and ambient animations, counters and menus.
type PageConfig struct {
	Viewport SizeConfig `yaml:"viewport"`
	Page     SizeConfig `yaml:"page"` // zero disables scroll clamping
	// Seed feeds the jitter source so that randomised loops are
	// reproducible. Zero is a valid seed.
	Seed    uint64         `yaml:"seed"`
	Regions []RegionConfig `yaml:"regions"`
	Menus   []MenuYAML     `yaml:"menus"`
}

// SizeConfig is a width/height pair.
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RectConfig is a rectangle in page or screen coordinates.
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RegionConfig describes one tracked region.
type RegionConfig struct {
	Name     string          `yaml:"name"`
	Bounds   RectConfig      `yaml:"bounds"`
	Reveal   *RevealConfig   `yaml:"reveal"`  // tasks started on first visibility
	Stagger  []StaggerConfig `yaml:"stagger"` // staggered groups revealed with the region
	Ambient  []TaskYAML      `yaml:"ambient"` // loops started on mount
	Counters []CounterYAML   `yaml:"counters"`
}

// ObserveConfig holds the visibility options shared by reveals and stagger
// groups.
type ObserveConfig struct {
	// Margin is CSS margin shorthand, e.g. "-100px" or "0px 0px -20% 0px".
	Margin string `yaml:"margin"`
	// Once defaults to true.
	Once *bool `yaml:"once"`
}

// RevealConfig lists tasks started when the region becomes visible.
type RevealConfig struct {
	ObserveConfig `yaml:",inline"`
	Tasks         []TaskYAML `yaml:"tasks"`
}

// StaggerConfig is a stagger group revealed with its region.
type StaggerConfig struct {
	ObserveConfig `yaml:",inline"`
	Name          string     `yaml:"name"`
	BaseDelayMs   int        `yaml:"baseDelayMs"`
	ChildOffsetMs int        `yaml:"childOffsetMs"`
	Tasks         []TaskYAML `yaml:"tasks"`
}

// TaskYAML is the file form of TaskConfig. Durations are in milliseconds.
type TaskYAML struct {
	Name       string               `yaml:"name"`
	From       map[string]float64   `yaml:"from"`
	To         map[string]float64   `yaml:"to"`
	Keyframes  map[string][]float64 `yaml:"keyframes"`
	DurationMs int                  `yaml:"durationMs"`
	DelayMs    int                  `yaml:"delayMs"`
	Easing     string               `yaml:"easing"`
	Repeat     string               `yaml:"repeat"`    // "none" (default) or "infinite"
	Direction  string               `yaml:"direction"` // "normal" (default) or "alternate"

	// Jitter adds a uniform random amount in [0, jitter] to the duration and
	// delay, drawn from the page seed.
	DurationJitterMs int `yaml:"durationJitterMs"`
	DelayJitterMs    int `yaml:"delayJitterMs"`
}

// CounterYAML is the file form of CounterConfig.
type CounterYAML struct {
	Name       string  `yaml:"name"`
	Ceiling    float64 `yaml:"ceiling"`
	Step       float64 `yaml:"step"`
	IntervalMs int     `yaml:"intervalMs"`
	LevelWidth float64 `yaml:"levelWidth"`
}

// MenuYAML is the file form of MenuConfig.
type MenuYAML struct {
	Name      string        `yaml:"name"`
	Toggle    RectConfig    `yaml:"toggle"`
	Panel     RectConfig    `yaml:"panel"`
	Close     RectConfig    `yaml:"close"`
	Links     []LinkYAML    `yaml:"links"`
	CancelKey string        `yaml:"cancelKey"` // defaults to "escape"
	Presence  *PresenceYAML `yaml:"presence"`
}

// LinkYAML is a navigation link inside a menu panel.
type LinkYAML struct {
	Name   string     `yaml:"name"`
	Bounds RectConfig `yaml:"bounds"`
}

// PresenceYAML is the file form of PresenceConfig. A non-empty Preset names
// a built-in presence (see PresencePresets) sized to the menu's links and
// replaces the other fields.
type PresenceYAML struct {
	Preset         string     `yaml:"preset"`
	Enter          TaskYAML   `yaml:"enter"`
	Exit           TaskYAML   `yaml:"exit"`
	Children       []TaskYAML `yaml:"children"`
	ChildDelayMs   int        `yaml:"childDelayMs"`
	ChildStaggerMs int        `yaml:"childStaggerMs"`
}

// LoadPageConfig reads, parses and validates a YAML page config.
func LoadPageConfig(path string) (*PageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page config file %s: %w", path, err)
	}
	cfg, err := ParsePageConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParsePageConfig parses and validates a YAML page config.
func ParsePageConfig(data []byte) (*PageConfig, error) {
	var cfg PageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse page config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the config for values Build cannot use.
func (c *PageConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return invalid("viewport must have a positive width and height")
	}
	if c.Page.Width < 0 || c.Page.Height < 0 {
		return invalid("page size cannot be negative")
	}

	names := make(map[string]bool, len(c.Regions))
	for i, r := range c.Regions {
		if r.Name == "" {
			return invalid("regions[%d]: name is required", i)
		}
		if names[r.Name] {
			return invalid("regions[%d]: duplicate name %q", i, r.Name)
		}
		names[r.Name] = true
		if r.Bounds.Width < 0 || r.Bounds.Height < 0 {
			return invalid("region %q: bounds cannot have negative size", r.Name)
		}
		if r.Reveal != nil {
			if err := r.Reveal.ObserveConfig.validate(); err != nil {
				return invalid("region %q reveal: %v", r.Name, err)
			}
			if err := validateTasks(r.Reveal.Tasks); err != nil {
				return invalid("region %q reveal: %v", r.Name, err)
			}
		}
		for j, g := range r.Stagger {
			if err := g.ObserveConfig.validate(); err != nil {
				return invalid("region %q stagger[%d]: %v", r.Name, j, err)
			}
			if g.BaseDelayMs < 0 || g.ChildOffsetMs < 0 {
				return invalid("region %q stagger[%d]: delays cannot be negative", r.Name, j)
			}
			if err := validateTasks(g.Tasks); err != nil {
				return invalid("region %q stagger[%d]: %v", r.Name, j, err)
			}
		}
		if err := validateTasks(r.Ambient); err != nil {
			return invalid("region %q ambient: %v", r.Name, err)
		}
		for j, ct := range r.Counters {
			if ct.Ceiling <= 0 {
				return invalid("region %q counters[%d]: ceiling must be positive", r.Name, j)
			}
			if ct.Step <= 0 {
				return invalid("region %q counters[%d]: step must be positive", r.Name, j)
			}
			if ct.IntervalMs <= 0 {
				return invalid("region %q counters[%d]: intervalMs must be positive", r.Name, j)
			}
		}
	}

	for i, m := range c.Menus {
		if m.Name == "" {
			return invalid("menus[%d]: name is required", i)
		}
		if m.Toggle.Width <= 0 || m.Toggle.Height <= 0 {
			return invalid("menu %q: toggle must have a positive size", m.Name)
		}
		if m.CancelKey != "" && KeyByName(m.CancelKey) == KeyUnknown {
			return invalid("menu %q: unknown cancel key %q", m.Name, m.CancelKey)
		}
		if p := m.Presence; p != nil && p.Preset != "" {
			if _, ok := presencePresets[p.Preset]; !ok {
				return invalid("menu %q: unknown presence preset %q", m.Name, p.Preset)
			}
		} else if p != nil {
			all := append([]TaskYAML{p.Enter, p.Exit}, p.Children...)
			if err := validateTasks(all); err != nil {
				return invalid("menu %q presence: %v", m.Name, err)
			}
			if p.ChildDelayMs < 0 || p.ChildStaggerMs < 0 {
				return invalid("menu %q presence: delays cannot be negative", m.Name)
			}
		}
	}
	return nil
}

func (o ObserveConfig) validate() error {
	if o.Margin == "" {
		return nil
	}
	_, err := ParseMargin(o.Margin)
	return err
}

func validateTasks(tasks []TaskYAML) error {
	for i, t := range tasks {
		if err := t.validate(); err != nil {
			return fmt.Errorf("tasks[%d]: %w", i, err)
		}
	}
	return nil
}

func (t TaskYAML) validate() error {
	if t.DurationMs < 0 || t.DelayMs < 0 || t.DurationJitterMs < 0 || t.DelayJitterMs < 0 {
		return fmt.Errorf("durations cannot be negative")
	}
	if _, err := EasingByName(t.Easing); err != nil {
		return err
	}
	switch t.Repeat {
	case "", "none", "infinite":
	default:
		return fmt.Errorf("repeat must be one of: none, infinite, got %q", t.Repeat)
	}
	switch t.Direction {
	case "", "normal", "alternate":
	default:
		return fmt.Errorf("direction must be one of: normal, alternate, got %q", t.Direction)
	}
	return nil
}

// configBuilder converts file forms into runtime values, drawing jitter from
// the page seed.
type configBuilder struct {
	rng *rand.Rand
}

func (b *configBuilder) jitter(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(b.rng.Int64N(int64(ms)+1)) * time.Millisecond
}

func (b *configBuilder) task(t TaskYAML) (TaskConfig, error) {
	fn, err := EasingByName(t.Easing)
	if err != nil {
		return TaskConfig{}, err
	}
	cfg := TaskConfig{
		Name:      t.Name,
		From:      Props(t.From),
		To:        Props(t.To),
		Keyframes: t.Keyframes,
		Duration:  ms(t.DurationMs) + b.jitter(t.DurationJitterMs),
		Delay:     ms(t.DelayMs) + b.jitter(t.DelayJitterMs),
		Ease:      fn,
	}
	if t.Repeat == "infinite" {
		cfg.Repeat = RepeatInfinite
	}
	if t.Direction == "alternate" {
		cfg.Direction = DirectionAlternate
	}
	return cfg, nil
}

func (b *configBuilder) tasks(ts []TaskYAML) ([]TaskConfig, error) {
	out := make([]TaskConfig, 0, len(ts))
	for _, t := range ts {
		cfg, err := b.task(t)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

func (o ObserveConfig) options() (ObserveOptions, error) {
	opts := ObserveOptions{Once: true}
	if o.Once != nil {
		opts.Once = *o.Once
	}
	if o.Margin != "" {
		m, err := ParseMargin(o.Margin)
		if err != nil {
			return ObserveOptions{}, err
		}
		opts.Margin = m
	}
	return opts, nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func (r RectConfig) rect() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Build validates cfg and creates a stage with every region, animation,
// counter and menu it describes. Regions are mounted in file order.
func Build(cfg *PageConfig) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &configBuilder{rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))}

	s := NewStage(Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height})
	s.SetPageSize(Size{Width: cfg.Page.Width, Height: cfg.Page.Height})

	for _, rc := range cfg.Regions {
		if err := b.region(s, rc); err != nil {
			return nil, invalid("region %q: %v", rc.Name, err)
		}
	}
	for _, mc := range cfg.Menus {
		m, err := b.menu(mc)
		if err != nil {
			return nil, invalid("menu %q: %v", mc.Name, err)
		}
		s.AddMenu(m)
	}
	return s, nil
}

func (b *configBuilder) region(s *Stage, rc RegionConfig) error {
	r := s.AddRegion(rc.Name, rc.Bounds.rect())

	if rc.Reveal != nil {
		opts, err := rc.Reveal.options()
		if err != nil {
			return err
		}
		cfgs, err := b.tasks(rc.Reveal.Tasks)
		if err != nil {
			return err
		}
		s.Reveal(r, opts, cfgs...)
	}

	for _, gc := range rc.Stagger {
		opts, err := gc.options()
		if err != nil {
			return err
		}
		cfgs, err := b.tasks(gc.Tasks)
		if err != nil {
			return err
		}
		g := s.AddStagger(r, gc.Name, ms(gc.BaseDelayMs), ms(gc.ChildOffsetMs))
		for _, c := range cfgs {
			s.StaggerTask(r, g, c)
		}
		s.RevealGroup(r, opts, g)
	}

	cfgs, err := b.tasks(rc.Ambient)
	if err != nil {
		return err
	}
	for _, c := range cfgs {
		s.Ambient(r, c)
	}

	for _, ct := range rc.Counters {
		s.AddCounter(r, CounterConfig{
			Name:       ct.Name,
			Ceiling:    ct.Ceiling,
			Step:       ct.Step,
			Interval:   ms(ct.IntervalMs),
			LevelWidth: ct.LevelWidth,
		})
	}
	return nil
}

func (b *configBuilder) menu(mc MenuYAML) (MenuConfig, error) {
	cfg := MenuConfig{
		Name:      mc.Name,
		Toggle:    mc.Toggle.rect(),
		Panel:     mc.Panel.rect(),
		Close:     mc.Close.rect(),
		CancelKey: KeyByName(mc.CancelKey),
	}
	for _, l := range mc.Links {
		cfg.Links = append(cfg.Links, MenuLink{Name: l.Name, Bounds: l.Bounds.rect()})
	}
	if p := mc.Presence; p != nil && p.Preset != "" {
		pc := presencePresets[p.Preset](len(mc.Links))
		cfg.Presence = &pc
	} else if p != nil {
		enter, err := b.task(p.Enter)
		if err != nil {
			return MenuConfig{}, err
		}
		exit, err := b.task(p.Exit)
		if err != nil {
			return MenuConfig{}, err
		}
		children, err := b.tasks(p.Children)
		if err != nil {
			return MenuConfig{}, err
		}
		cfg.Presence = &PresenceConfig{
			Enter:        enter,
			Exit:         exit,
			Children:     children,
			ChildDelay:   ms(p.ChildDelayMs),
			ChildStagger: ms(p.ChildStaggerMs),
		}
	}
	return cfg, nil
}
