package fsprovider

import (
	"sync"
	"time"
)

// Rule describes a single fault-injection rule: when Match returns true for
// a given path, the operation fails with Err (after waiting Delay) instead
// of reaching the wrapped provider.
type Rule struct {
	// Match reports whether this rule applies to path.
	Match func(path string) bool
	// Err is the error to return when Match applies. If nil, the call
	// passes through to the wrapped provider after Delay elapses.
	Err error
	// Delay is injected before the call proceeds (whether faulted or not),
	// letting tests exercise timeout and cancellation logic.
	Delay time.Duration
}

// Fault wraps a Provider to inject synthetic errors and latency, the swap
// point spec.md §4.5 calls for to test the graph's error-absorption and
// async suspension behavior without depending on the real filesystem's
// failure modes.
type Fault struct {
	mu      sync.Mutex
	wrapped Provider
	rules   []Rule
}

// NewFault constructs a Fault provider wrapping the given provider with no
// rules installed; calls pass straight through until rules are added.
func NewFault(wrapped Provider) *Fault {
	return &Fault{wrapped: wrapped}
}

// AddRule appends a fault rule. Rules are evaluated in the order added; the
// first match wins.
func (f *Fault) AddRule(rule Rule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule)
}

// Clear removes all installed rules.
func (f *Fault) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
}

func (f *Fault) match(path string) *Rule {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rules {
		if f.rules[i].Match(path) {
			return &f.rules[i]
		}
	}
	return nil
}

func (f *Fault) apply(path string) error {
	if rule := f.match(path); rule != nil {
		if rule.Delay > 0 {
			time.Sleep(rule.Delay)
		}
		return rule.Err
	}
	return nil
}

func (f *Fault) LstatSync(path string) (*Stat, error) {
	if err := f.apply(path); err != nil {
		return nil, err
	}
	return f.wrapped.LstatSync(path)
}

func (f *Fault) ReaddirSync(path string) ([]DirEntry, error) {
	if err := f.apply(path); err != nil {
		return nil, err
	}
	return f.wrapped.ReaddirSync(path)
}

func (f *Fault) ReadlinkSync(path string) (string, error) {
	if err := f.apply(path); err != nil {
		return "", err
	}
	return f.wrapped.ReadlinkSync(path)
}

func (f *Fault) RealpathSync(path string) (string, error) {
	if err := f.apply(path); err != nil {
		return "", err
	}
	return f.wrapped.RealpathSync(path)
}

func (f *Fault) Readdir(path string, callback func([]DirEntry, error)) {
	if err := f.apply(path); err != nil {
		callback(nil, err)
		return
	}
	f.wrapped.Readdir(path, callback)
}

func (f *Fault) LstatAsync(path string) <-chan LstatResult {
	result := make(chan LstatResult, 1)
	go func() {
		stat, err := f.LstatSync(path)
		result <- LstatResult{Stat: stat, Err: err}
	}()
	return result
}

func (f *Fault) ReaddirAsync(path string) <-chan ReaddirResult {
	result := make(chan ReaddirResult, 1)
	go func() {
		entries, err := f.ReaddirSync(path)
		result <- ReaddirResult{Entries: entries, Err: err}
	}()
	return result
}

func (f *Fault) ReadlinkAsync(path string) <-chan ReadlinkResult {
	result := make(chan ReadlinkResult, 1)
	go func() {
		target, err := f.ReadlinkSync(path)
		result <- ReadlinkResult{Target: target, Err: err}
	}()
	return result
}

func (f *Fault) RealpathAsync(path string) <-chan RealpathResult {
	result := make(chan RealpathResult, 1)
	go func() {
		resolved, err := f.RealpathSync(path)
		result <- RealpathResult{Path: resolved, Err: err}
	}()
	return result
}
